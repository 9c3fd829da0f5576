package notify

// contentFunc 按触发者名称渲染推送标题和正文
type contentFunc func(actorName string) (title string, body string)

var contentTable = map[Type]contentFunc{
	TypeHealthCheckCampaignNew: func(string) (string, string) {
		return "新的健康检查活动", "学校发布了新的健康检查活动，请查看详情并提交回执"
	},
	TypeVaccinationCampaignNew: func(string) (string, string) {
		return "新的疫苗接种活动", "学校发布了新的疫苗接种活动，请查看详情并提交接种同意书"
	},
	TypeResultReady: func(string) (string, string) {
		return "检查结果已出", "您孩子的检查结果已出，请前往查看"
	},
	TypeConsentSubmitted: func(actorName string) (string, string) {
		if actorName == "" {
			return "收到新的回执", "有家长提交了活动回执"
		}
		return "收到新的回执", actorName + " 提交了活动回执"
	},
	TypeIncidentAlert: func(string) (string, string) {
		return "健康事件提醒", "学校记录了一起与您孩子相关的健康事件，请及时查看"
	},
	TypeMedicationScheduled: func(string) (string, string) {
		return "用药申请已安排", "您提交的用药申请已由校医安排执行"
	},
	TypeMedicationDue: func(string) (string, string) {
		return "今日用药提醒", "今天有学生需要按计划用药，请及时处理"
	},
	TypeChatMessage: func(actorName string) (string, string) {
		if actorName == "" {
			return "新消息", "您收到一条新消息"
		}
		return "新消息", actorName + " 给您发来一条消息"
	},
	TypeInventoryLowStock: func(string) (string, string) {
		return "库存不足预警", "有药品或物资库存低于警戒线，请及时补货"
	},
}

// RenderContent 渲染推送文案，未知类型落到通用文案，绝不失败
func RenderContent(t Type, actorName string) (string, string) {
	if fn, ok := contentTable[t]; ok {
		return fn(actorName)
	}
	return "新通知", "您有一条新的通知，请前往消息中心查看"
}
