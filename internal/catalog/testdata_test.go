package catalog

// fixtureTable returns a small export in scrambled order. Columns follow
// RequiredColumns.
func fixtureTable() Table {
	return Table{
		Columns: append([]string(nil), RequiredColumns...),
		Rows: [][]string{
			// code, title, title_ja, session_type, session_tracks, session_tracks_ja, date, time_from, time_to, hour_from, description, description_ja, session_id, url
			{"DEF300", "Streaming pipelines", "ストリーミング", "Breakout", "Engineering", "エンジニアリング", "2025-04-09", "14:00:00", "14:45:00", "14", "Snowpipe deep dive", "Snowpipe 詳細", "id-3", "https://example.com/s/3"},
			{"ABC101", "Intro to X", "Xの紹介", "Breakout", "Data", "データ", "2025-04-08", "09:00:00", "09:45:00", "9", "Learn the basics", "基本を学ぶ", "id-1", "https://example.com/s/1"},
			{"XYZ200", "Opening Keynote", "基調講演", "Keynote", "Featured", "注目", "2025-04-08", "08:00:00", "08:50:00", "8", "Welcome", "ようこそ", "id-2", "https://example.com/s/2"},
			{"GHI400", "Governance", "ガバナンス", "Theater", "Data", "データ", "2025-04-08", "09:00:00", "09:20:00", "9", "Horizon catalog tour", "Horizon カタログ紹介", "id-4", "https://example.com/s/4"},
			{"JKL500", "ÉCOLE apps", "アプリ入門", "Theater", "Zeta", "アプリ", "2025-04-08", "09:00:00", "09:30:00", "9", "Build native apps", "ネイティブアプリ", "id-5", "https://example.com/s/5"},
			{"MNO600", "Morning lab", "朝のラボ", "Hands-on Lab", "Engineering", "エンジニアリング", "2025-04-09", "9:30", "11:00", "9.0", "Hands-on with tasks", "タスク実習", "id-6", "https://example.com/s/6"},
		},
	}
}

func sessionIDs(rows []Session) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.SessionID
	}
	return ids
}

func mustProject(t interface {
	Helper()
	Fatalf(string, ...any)
}, tbl Table, lang Language) []Session {
	t.Helper()
	rows, err := Project(tbl, lang)
	if err != nil {
		t.Fatalf("Project(%s): %v", lang, err)
	}
	return rows
}
