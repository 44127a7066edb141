package insight

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine 评估编排器：归一化 → 分级 → 转介，跨所有被作答的维度组装最终报告。
// 目录与日志器显式注入，引擎本身无全局状态、无 I/O。
type Engine struct {
	catalog *Catalog
	log     *zap.Logger
}

func NewEngine(catalog *Catalog, log *zap.Logger) *Engine {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{catalog: catalog, log: log}
}

func (e *Engine) Catalog() *Catalog { return e.catalog }

// AssessmentInput 一次评估提交的全部输入
type AssessmentInput struct {
	Responses   []Response
	Questions   []Question
	Method      ScoringMethod
	ConductedBy string
}

// issueAccumulator 汇总某一维度上所有作答的贡献
type issueAccumulator struct {
	cfg         IssueConfig
	weightedSum float64 // Σ(normalized × weightage)
	weightSum   float64 // Σ(weightage)
	plainSum    float64 // Σ(normalized)
	count       int
}

// Score 执行完整评估。未知题目跳过并告警，不影响整体；
// 方法不合法或没有任何作答则返回 ValidationError。
func (e *Engine) Score(in AssessmentInput) (*AssessmentResult, error) {
	if !in.Method.Valid() {
		return nil, &ValidationError{Field: "method", Reason: fmt.Sprintf("unrecognized scoring method %q", in.Method)}
	}
	if len(in.Responses) == 0 {
		return nil, &ValidationError{Field: "responses", Reason: "an assessment needs at least one answer"}
	}

	questions := make(map[string]Question, len(in.Questions))
	for _, q := range in.Questions {
		questions[q.ID] = q
		if sum := weightageSum(q); sum > 100 {
			e.log.Warn("question weightages exceed 100",
				zap.String("questionId", q.ID),
				zap.Float64("sum", sum))
		}
	}

	// 按首次出现顺序累计各维度贡献
	accs := make(map[string]*issueAccumulator)
	var issueOrder []string
	answered := 0

	for _, r := range in.Responses {
		q, ok := questions[r.QuestionID]
		if !ok {
			e.log.Warn("response references unknown question, skipping",
				zap.String("questionId", r.QuestionID))
			continue
		}

		normalized, err := NormalizeAnswer(q, r)
		if err != nil {
			return nil, err
		}
		answered++

		for _, w := range q.IssueWeightages {
			cfg, ok := e.catalog.Issue(w.IssueID)
			if !ok {
				e.log.Warn("question references issue missing from catalog, skipping",
					zap.String("questionId", q.ID),
					zap.String("issueId", w.IssueID))
				continue
			}

			acc, ok := accs[w.IssueID]
			if !ok {
				acc = &issueAccumulator{cfg: cfg}
				accs[w.IssueID] = acc
				issueOrder = append(issueOrder, w.IssueID)
			}
			acc.weightedSum += normalized * w.Weightage
			acc.weightSum += w.Weightage
			acc.plainSum += normalized
			acc.count++
		}
	}

	issues := make([]IssueResult, 0, len(issueOrder))
	for _, id := range issueOrder {
		issues = append(issues, e.scoreIssue(in.Method, accs[id]))
	}

	concerns := primaryConcerns(in.Method, issues)
	risks := riskIndicators(issues)

	confidence := 0.0
	if e.catalog.IssueCount() > 0 {
		confidence = round2(float64(len(issues)) / float64(e.catalog.IssueCount()))
	}

	return &AssessmentResult{
		AssessmentID:    uuid.New().String(),
		Method:          in.Method,
		AssessmentDate:  time.Now(),
		ConductedBy:     in.ConductedBy,
		Issues:          issues,
		PrimaryConcerns: concerns,
		OverallSummary:  summarize(concerns),
		Recommendations: assessmentRecommendations(issues),
		Metadata: AssessmentMetadata{
			TotalQuestions: answered,
			Confidence:     confidence,
			RiskIndicators: risks,
		},
	}, nil
}

// scoreIssue 将累计贡献转成单维度结果。
// weighted_average：加权均值直接作为分数；
// T 分数方法：先求（加权或简单）均值，再按常模换算 T = 50 + 10 × (mean − norm.Mean) / norm.StdDev。
func (e *Engine) scoreIssue(method ScoringMethod, acc *issueAccumulator) IssueResult {
	res := IssueResult{IssueID: acc.cfg.ID, IssueName: acc.cfg.Name}

	var mean float64
	switch method {
	case MethodWeightedAverage, MethodTScoreWeighted:
		if acc.weightSum > 0 {
			mean = acc.weightedSum / acc.weightSum
		}
	case MethodTScoreNonWeighted:
		if acc.count > 0 {
			mean = acc.plainSum / float64(acc.count)
		}
	}

	res.Score = round2(mean)
	res.NormalizedScore = round2(clamp(mean, 0, 100))

	classified := res.Score
	if method != MethodWeightedAverage {
		t := round2(50 + 10*(mean-acc.cfg.Norm.Mean)/acc.cfg.Norm.StdDev)
		res.TScore = &t
		classified = t
	}

	res.Severity = ClassifySeverity(classified, e.catalog.BandsFor(method, acc.cfg))
	attachReferral(&res, acc.cfg)
	return res
}

// primaryConcerns 非 normal 的维度名称，按生效分数降序。
func primaryConcerns(method ScoringMethod, issues []IssueResult) []string {
	type ranked struct {
		name  string
		score float64
	}
	var flagged []ranked
	for _, is := range issues {
		if is.Severity == SeverityNormal {
			continue
		}
		score := is.Score
		if method != MethodWeightedAverage && is.TScore != nil {
			score = *is.TScore
		}
		flagged = append(flagged, ranked{name: is.IssueName, score: score})
	}
	sort.SliceStable(flagged, func(i, j int) bool { return flagged[i].score > flagged[j].score })

	names := make([]string, len(flagged))
	for i, f := range flagged {
		names[i] = f.name
	}
	return names
}

func riskIndicators(issues []IssueResult) []string {
	var risks []string
	for _, is := range issues {
		if is.Severity == SeverityClinical {
			risks = append(risks, is.IssueName)
		}
	}
	return risks
}

// summarize 固定模板总结，最多点名前 3 个主要关注项。
func summarize(concerns []string) string {
	if len(concerns) == 0 {
		return "No significant concerns identified"
	}
	top := concerns
	if len(top) > 3 {
		top = top[:3]
	}
	return fmt.Sprintf("Assessment identified elevated concern in: %s", strings.Join(top, ", "))
}

var assessmentAdvice = []advisoryRule[[]IssueResult, AssessmentRecommendation]{
	{
		when: func(issues []IssueResult) bool { return severityPresent(issues, SeverityClinical) },
		build: func(issues []IssueResult) []AssessmentRecommendation {
			var out []AssessmentRecommendation
			for _, is := range issues {
				if is.Severity == SeverityClinical {
					out = append(out, AssessmentRecommendation{
						Category: "professional_support",
						Text:     fmt.Sprintf("Seek a professional consultation for %s as soon as possible", is.IssueName),
						Priority: PriorityHigh,
					})
				}
			}
			return out
		},
	},
	{
		when: func(issues []IssueResult) bool { return severityPresent(issues, SeverityBorderline) },
		build: func(issues []IssueResult) []AssessmentRecommendation {
			var out []AssessmentRecommendation
			for _, is := range issues {
				if is.Severity == SeverityBorderline {
					out = append(out, AssessmentRecommendation{
						Category: "monitoring",
						Text:     fmt.Sprintf("Monitor %s and schedule a follow-up assessment within a month", is.IssueName),
						Priority: PriorityMedium,
					})
				}
			}
			return out
		},
	},
	{
		when: func(issues []IssueResult) bool {
			return !severityPresent(issues, SeverityClinical) && !severityPresent(issues, SeverityBorderline)
		},
		build: func([]IssueResult) []AssessmentRecommendation {
			return []AssessmentRecommendation{{
				Category: "general",
				Text:     "Maintain current wellbeing routines and reassess at the next scheduled interval",
				Priority: PriorityLow,
			}}
		},
	},
}

func assessmentRecommendations(issues []IssueResult) []AssessmentRecommendation {
	recs := evalRules(issues, assessmentAdvice)
	sortByPriority(recs, func(r AssessmentRecommendation) Priority { return r.Priority })
	return recs
}

func severityPresent(issues []IssueResult, s Severity) bool {
	for _, is := range issues {
		if is.Severity == s {
			return true
		}
	}
	return false
}

func weightageSum(q Question) float64 {
	var sum float64
	for _, w := range q.IssueWeightages {
		sum += w.Weightage
	}
	return sum
}
