package domain

const (
	// DefaultProjectID names the project recreated on first run and after a data clear.
	DefaultProjectID   = "default"
	DefaultProjectName = "我的项目"
	DefaultLabel       = "name"
)

// presetNote is the placeholder note carried by stages without specific guidance.
const presetNote = "123"

var presetStages = []struct{ name, note string }{
	{"提案", presetNote},
	{"目录大纲", presetNote},
	{"文本样章", "风格与深度校准"},
	{"版式文本", "目录篇章节核心板块小结节"},
	{"三分之一稿件", presetNote},
	{"排版", presetNote},
	{"全文定稿", presetNote},
	{"插画", "根据内容提炼插画关键词做好文本索引"},
	{"全文排版", "补全插画"},
	{"封面文案", presetNote},
	{"封面设计", presetNote},
	{"出片交付", "出片检查，源文件存档"},
}

// PresetMilestones returns the twelve-stage publishing workflow, all incomplete.
func PresetMilestones() []Milestone {
	ms := make([]Milestone, len(presetStages))
	for i, s := range presetStages {
		ms[i] = Milestone{Name: s.name, Note: s.note}
	}
	return ms
}
