package insight

// ClassifySeverity 按阈值分级。区间左闭右开：
// score < Borderline → normal，[Borderline, Clinical) → borderline，≥ Clinical → clinical。
func ClassifySeverity(score float64, bands SeverityBands) Severity {
	switch {
	case score >= bands.Clinical:
		return SeverityClinical
	case score >= bands.Borderline:
		return SeverityBorderline
	default:
		return SeverityNormal
	}
}
