package extract

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"golang.org/x/text/encoding/unicode"
)

var exportHeader = []string{"要素ID", "項目名", "コンテキストID", "相対年度", "連結・個別", "期間・時点", "ユニットID", "単位", "値"}

var exportRows = [][]string{
	{"jpcrp_cor:NetSalesSummaryOfBusinessResults", "売上高", "CurrentYearDuration", "当期", "連結", "期間", "JPY", "円", "12345000000"},
	{"jpcrp_cor:NetSalesSummaryOfBusinessResults", "売上高", "Prior1YearDuration", "前期", "連結", "期間", "JPY", "円", "11000000000"},
	{"jpcrp_cor:NetSalesSummaryOfBusinessResults", "売上高", "Prior4YearDuration", "四期前", "連結", "期間", "JPY", "円", "8000000000"},
	{"jpcrp_cor:NetSalesSummaryOfBusinessResults", "売上高", "CurrentYearDuration_NonConsolidatedMember", "当期", "個別", "期間", "JPY", "円", "9000000000"},
	{"jpcrp_cor:NetSalesSummaryOfBusinessResults", "売上高", "CurrentYearDuration_ReportableSegmentsMember", "当期", "連結", "期間", "JPY", "円", "1"},
	{"jpcrp_cor:NetAssetsPerShareSummaryOfBusinessResults", "１株当たり純資産額", "CurrentYearInstant", "当期末", "連結", "時点", "JPY", "円", "2,450.12"},
	{"jpcrp_cor:BasicEarningsLossPerShareSummaryOfBusinessResults", "１株当たり当期純利益", "CurrentYearDuration", "当期", "連結", "期間", "JPY", "円", "185.3"},
	{"jpcrp_cor:DividendPaidPerShareSummaryOfBusinessResults", "１株当たり配当額", "CurrentYearDuration_NonConsolidatedMember", "当期", "個別", "期間", "JPY", "円", "60"},
	{"jpcrp_cor:PriceEarningsRatioSummaryOfBusinessResults", "株価収益率", "CurrentYearDuration", "当期", "連結", "期間", "pure", "", "－"},
	{"jpcrp_cor:NetCashProvidedByUsedInOperatingActivitiesSummaryOfBusinessResults", "営業CF", "CurrentYearDuration", "当期", "連結", "期間", "JPY", "円", "1500000000"},
	{"jpcrp_cor:NetCashProvidedByUsedInInvestingActivitiesSummaryOfBusinessResults", "投資CF", "CurrentYearDuration", "当期", "連結", "期間", "JPY", "円", "-400000000"},
	{"jpcrp_cor:TotalNumberOfIssuedSharesSummaryOfBusinessResults", "発行済株式総数", "CurrentYearInstant_NonConsolidatedMember", "当期末", "個別", "時点", "shares", "株", "8500000"},
	{"jpcrp_cor:NetAssetsSummaryOfBusinessResults", "純資産額", "CurrentYearInstant", "当期末", "連結", "時点", "JPY", "円", ""},
	{"jppfs_cor:CashAndDeposits", "現金及び預金", "CurrentYearInstant", "当期末", "連結", "時点", "JPY", "円", "700000000"},
}

// writeExport writes rows as a UTF-16LE (with BOM) tab-separated EDINET CSV.
func writeExport(t *testing.T, path string, header []string, rows [][]string) {
	t.Helper()

	var b strings.Builder
	for _, row := range append([][]string{header}, rows...) {
		quoted := make([]string, len(row))
		for i, cell := range row {
			quoted[i] = `"` + cell + `"`
		}
		b.WriteString(strings.Join(quoted, "\t"))
		b.WriteString("\r\n")
	}

	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(b.String())
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(encoded), 0644))
}

func newTestExtractor() *Extractor {
	return NewExtractor(arbor.NewLogger())
}

func TestExtract_NilLoggerUsesDefault(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, filepath.Join(dir, "jpcrp030000-asr.csv"), exportHeader, exportRows)

	summary, err := NewExtractor(nil).Extract(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, summary[YearCurrent])
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, filepath.Join(dir, "XBRL_TO_CSV", "jpcrp030000-asr-001_E01234-000_2024-03-31_01_2024-06-27.csv"), exportHeader, exportRows)

	summary, err := newTestExtractor().Extract(dir)
	require.NoError(t, err)

	current := summary[YearCurrent]
	require.NotNil(t, current)

	require.NotNil(t, current["net_sales"].Number)
	assert.Equal(t, 12345000000.0, *current["net_sales"].Number, "consolidated value wins")
	assert.Equal(t, 2450.12, *current["bps"].Number, "commas stripped")
	assert.Equal(t, 185.3, *current["eps"].Number)
	assert.Equal(t, 60.0, *current["dividend_per_share"].Number, "non-consolidated fallback")
	assert.Equal(t, 8500000.0, *current["shares_issued"].Number)
	assert.Equal(t, -400000000.0, *current["investing_cf"].Number)

	assert.Nil(t, current["per"].Number)
	assert.Equal(t, "－", current["per"].Text)

	_, hasNetAssets := current["net_assets"]
	assert.False(t, hasNetAssets, "empty cells are skipped")

	assert.Equal(t, 11000000000.0, *summary["prior1"]["net_sales"].Number)
	assert.Equal(t, 8000000000.0, *summary["prior4"]["net_sales"].Number)
	assert.NotContains(t, summary, "prior2")
}

func TestExtract_NotFound(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jpaud-aar-cn-001.csv"), []byte("x"), 0644))

	_, err := newTestExtractor().Extract(dir)
	assert.ErrorIs(t, err, ErrExportNotFound)

	_, err = newTestExtractor().Extract(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, ErrExportNotFound)
}

func TestExtract_MissingColumns(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, filepath.Join(dir, "jpcrp.csv"), []string{"要素ID", "値"}, [][]string{{"a", "1"}})

	_, err := newTestExtractor().Extract(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing columns")
}

func TestFindExport_PicksFirstSorted(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"jpcrp040300-q1r.csv", "jpcrp030000-asr.csv", "jpaud-aar.csv"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	path, err := FindExport(dir)
	require.NoError(t, err)
	assert.Equal(t, "jpcrp030000-asr.csv", filepath.Base(path))
}

func TestParseContext(t *testing.T) {
	tests := []struct {
		id           string
		label        string
		consolidated bool
		ok           bool
	}{
		{"CurrentYearDuration", "current", true, true},
		{"CurrentYearInstant", "current", true, true},
		{"Prior3YearInstant_NonConsolidatedMember", "prior3", false, true},
		{"Prior1YearDuration_ReportableSegmentsMember", "", false, false},
		{"FilingDateInstant", "", false, false},
		{"Prior5YearDuration", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			label, consolidated, ok := parseContext(tt.id)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.label, label)
			assert.Equal(t, tt.consolidated, consolidated)
		})
	}
}

func TestValueJSON(t *testing.T) {
	summary := Summary{YearCurrent: {
		"eps": parseValue("185.3"),
		"per": parseValue("－"),
	}}

	data, err := json.Marshal(summary)
	require.NoError(t, err)
	assert.JSONEq(t, `{"current": {"eps": 185.3, "per": "－"}}`, string(data))

	var back Summary
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, 185.3, *back[YearCurrent]["eps"].Number)
	assert.Equal(t, "－", back[YearCurrent]["per"].Text)
}
