// Package i18n provides the Japanese and English labels of the viewer.
package i18n

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/ja"
	ut "github.com/go-playground/universal-translator"

	"github.com/jwulff/summit/internal/catalog"
)

// Key identifies a label.
type Key string

const (
	Code        Key = "code"
	Title       Key = "title"
	SessionType Key = "session_type"
	Track       Key = "session_tracks"
	Date        Key = "date"
	TimeFrom    Key = "time_from"
	TimeTo      Key = "time_to"
	Hour        Key = "hour_from"
	Description Key = "description"
	Link        Key = "url"
	Search      Key = "search"
	Criteria    Key = "criteria"
	Results     Key = "results"
	AppTitle    Key = "app_title"
	Caption     Key = "caption"
	Placeholder Key = "placeholder"
	NoResults   Key = "no_results"
	Snapshot    Key = "snapshot"
	Language    Key = "language"
)

const countKey = "count"

var texts = map[string]map[Key]string{
	"ja": {
		Code:        "CODE",
		Title:       "タイトル",
		SessionType: "セッション種別",
		Track:       "分類",
		Date:        "日付",
		TimeFrom:    "開始時刻",
		TimeTo:      "終了時刻",
		Hour:        "開始時間帯",
		Description: "説明",
		Link:        "リンク",
		Search:      "検索",
		Criteria:    "検索条件",
		Results:     "検索結果",
		AppTitle:    "セッション検索アプリ",
		Caption:     "時点データなので、実際のセッション時間等はリンク先を確認してください。",
		Placeholder: "Like",
		NoResults:   "該当するセッションはありません",
		Snapshot:    "データ時点",
		Language:    "日本語",
	},
	"en": {
		Code:        "CODE",
		Title:       "Title",
		SessionType: "Type",
		Track:       "Track",
		Date:        "Date",
		TimeFrom:    "Start",
		TimeTo:      "End",
		Hour:        "Hour",
		Description: "Description",
		Link:        "Link",
		Search:      "Search",
		Criteria:    "Filters",
		Results:     "Results",
		AppTitle:    "Session Finder",
		Caption:     "Point-in-time data; check the session page for the actual schedule.",
		Placeholder: "Like",
		NoResults:   "No matching sessions",
		Snapshot:    "Snapshot",
		Language:    "English",
	},
}

// Translator renders labels for one language.
type Translator struct {
	lang  catalog.Language
	trans ut.Translator
}

var (
	once        sync.Once
	translators map[catalog.Language]*Translator
)

type plural struct {
	rule locales.PluralRule
	text string
}

// counts holds the cardinal forms of the result count per locale.
var counts = map[string][]plural{
	"ja": {{locales.PluralRuleOther, "{0}件"}},
	"en": {{locales.PluralRuleOne, "{0} session"}, {locales.PluralRuleOther, "{0} sessions"}},
}

func build() {
	var err error
	translators, err = newTranslators(texts, counts)
	if err != nil {
		panic("i18n: " + err.Error())
	}
}

func newTranslators(texts map[string]map[Key]string, counts map[string][]plural) (map[catalog.Language]*Translator, error) {
	enLoc := en.New()
	uni := ut.New(enLoc, enLoc, ja.New())

	out := make(map[catalog.Language]*Translator, 2)
	var errs []error
	for lang, locale := range map[catalog.Language]string{catalog.Japanese: "ja", catalog.English: "en"} {
		trans, ok := uni.GetTranslator(locale)
		if !ok {
			return nil, fmt.Errorf("no translator for %s", locale)
		}
		for k, text := range texts[locale] {
			if err := trans.Add(k, text, false); err != nil {
				errs = append(errs, fmt.Errorf("%s %s: %w", locale, k, err))
			}
		}
		for _, p := range counts[locale] {
			if err := trans.AddCardinal(countKey, p.text, p.rule, false); err != nil {
				errs = append(errs, fmt.Errorf("%s %s: %w", locale, countKey, err))
			}
		}
		if err := trans.VerifyTranslations(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", locale, err))
		}
		out[lang] = &Translator{lang: lang, trans: trans}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return out, nil
}

// For returns the translator for lang. Unknown languages get Japanese.
func For(lang catalog.Language) *Translator {
	once.Do(build)
	if t, ok := translators[lang]; ok {
		return t
	}
	return translators[catalog.Japanese]
}

// Language returns the translator's language.
func (t *Translator) Language() catalog.Language { return t.lang }

// Label returns the text for k, or k itself when there is none.
func (t *Translator) Label(k Key) string {
	s, err := t.trans.T(k)
	if err != nil {
		return string(k)
	}
	return s
}

// FieldLabel returns the column header for a catalog field.
func (t *Translator) FieldLabel(f catalog.Field) string {
	return t.Label(Key(f))
}

// Count renders a result count, e.g. "1,204件" or "1 session".
func (t *Translator) Count(n int) string {
	num := t.trans.FmtNumber(float64(n), 0)
	s, err := t.trans.C(countKey, float64(n), 0, num)
	if err != nil {
		return strconv.Itoa(n)
	}
	return s
}

// Verify reports missing plural forms or labels.
func (t *Translator) Verify() error {
	return t.trans.VerifyTranslations()
}
