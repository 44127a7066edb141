package insight

// attachReferral 在 borderline/clinical 时补充推荐课程与专业转介，normal 不带任何转介字段。
func attachReferral(result *IssueResult, cfg IssueConfig) {
	if result.Severity == SeverityNormal {
		return
	}
	result.RecommendedCourseID = cfg.RecommendedCourseID
	if cfg.Referral != nil {
		ref := *cfg.Referral
		result.Referral = &ref
	}
}
