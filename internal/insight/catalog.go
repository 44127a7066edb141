package insight

// SeverityBands 单个评分方法下的分级阈值。
// score < Borderline → normal；[Borderline, Clinical) → borderline；≥ Clinical → clinical。
type SeverityBands struct {
	Borderline float64 `mapstructure:"borderline" json:"borderline"`
	Clinical   float64 `mapstructure:"clinical" json:"clinical"`
}

// NormParams T 分数常模参数
type NormParams struct {
	Mean   float64 `mapstructure:"mean" json:"mean"`
	StdDev float64 `mapstructure:"std_dev" json:"stdDev"`
}

// IssueConfig 单个问题维度的静态配置
type IssueConfig struct {
	ID                  string
	Name                string
	Bands               SeverityBands // weighted_average 方法的自定义阈值
	Norm                NormParams
	RecommendedCourseID string
	Referral            *ProfessionalReferral
}

// Catalog 阈值目录：进程启动时装配一次，注入分析器，保持引擎可离线单测。
type Catalog struct {
	issues      []IssueConfig
	index       map[string]int
	tScoreBands SeverityBands
}

// DefaultNorm 缺省常模 50/10
var DefaultNorm = NormParams{Mean: 50, StdDev: 10}

// DefaultTScoreBands 两种 T 分数方法共用的全局阈值
var DefaultTScoreBands = SeverityBands{Borderline: 65, Clinical: 70}

func NewCatalog(issues []IssueConfig, tScoreBands SeverityBands) *Catalog {
	c := &Catalog{
		issues:      make([]IssueConfig, 0, len(issues)),
		index:       make(map[string]int, len(issues)),
		tScoreBands: tScoreBands,
	}
	for _, is := range issues {
		if is.Norm.StdDev <= 0 {
			is.Norm = DefaultNorm
		}
		c.index[is.ID] = len(c.issues)
		c.issues = append(c.issues, is)
	}
	return c
}

func (c *Catalog) Issue(id string) (IssueConfig, bool) {
	i, ok := c.index[id]
	if !ok {
		return IssueConfig{}, false
	}
	return c.issues[i], true
}

func (c *Catalog) IssueCount() int { return len(c.issues) }

func (c *Catalog) TScoreBands() SeverityBands { return c.tScoreBands }

// BandsFor 返回某个维度在指定方法下生效的阈值：
// weighted_average 用维度自定义阈值，T 分数方法共用全局阈值。
func (c *Catalog) BandsFor(method ScoringMethod, issue IssueConfig) SeverityBands {
	if method == MethodWeightedAverage {
		return issue.Bands
	}
	return c.tScoreBands
}

// DefaultCatalog 内置维度配置。与数据库播种的默认题库配套使用，
// 生产环境可通过配置覆盖阈值。
func DefaultCatalog() *Catalog {
	return DefaultCatalogWith(DefaultNorm, DefaultTScoreBands)
}

// DefaultCatalogWith 内置维度配置，常模与 T 分数阈值由调用方提供
func DefaultCatalogWith(norm NormParams, tScoreBands SeverityBands) *Catalog {
	if norm.StdDev <= 0 {
		norm = DefaultNorm
	}
	if tScoreBands.Borderline <= 0 || tScoreBands.Clinical <= 0 {
		tScoreBands = DefaultTScoreBands
	}
	return NewCatalog([]IssueConfig{
		{
			ID:                  "anxiety",
			Name:                "Anxiety",
			Bands:               SeverityBands{Borderline: 60, Clinical: 75},
			Norm:                norm,
			RecommendedCourseID: "course-calm-foundations",
			Referral: &ProfessionalReferral{
				Specialty: "Child Psychologist",
				Name:      "Centre for Child Anxiety Support",
				Contact:   "anxiety-referrals@childwell.example",
			},
		},
		{
			ID:                  "depression",
			Name:                "Depression",
			Bands:               SeverityBands{Borderline: 55, Clinical: 70},
			Norm:                norm,
			RecommendedCourseID: "course-mood-matters",
			Referral: &ProfessionalReferral{
				Specialty: "Child Psychiatrist",
				Name:      "Pediatric Mood Clinic",
				Contact:   "mood-referrals@childwell.example",
			},
		},
		{
			ID:                  "attention",
			Name:                "Attention Difficulties",
			Bands:               SeverityBands{Borderline: 60, Clinical: 72},
			Norm:                norm,
			RecommendedCourseID: "course-focus-skills",
			Referral: &ProfessionalReferral{
				Specialty: "Developmental Pediatrician",
				Name:      "Attention & Learning Centre",
				Contact:   "attention-referrals@childwell.example",
			},
		},
		{
			ID:                  "social_withdrawal",
			Name:                "Social Withdrawal",
			Bands:               SeverityBands{Borderline: 58, Clinical: 73},
			Norm:                norm,
			RecommendedCourseID: "course-social-confidence",
			Referral: &ProfessionalReferral{
				Specialty: "Child Counsellor",
				Name:      "Social Development Service",
				Contact:   "social-referrals@childwell.example",
			},
		},
		{
			ID:                  "aggression",
			Name:                "Aggression",
			Bands:               SeverityBands{Borderline: 62, Clinical: 76},
			Norm:                norm,
			RecommendedCourseID: "course-emotion-regulation",
			Referral: &ProfessionalReferral{
				Specialty: "Behavioural Therapist",
				Name:      "Behaviour Support Clinic",
				Contact:   "behaviour-referrals@childwell.example",
			},
		},
	}, tScoreBands)
}
