package rules

import "github.com/fenlei-ai/fenlei/internal/category"

// Keyword tiers from the tuned rule tables survive as separate rules:
// each category gets a primary rule (strong evidence) and a support
// rule (weaker evidence at a lower weight), so graded keyword strength
// is expressed through rule weights instead of scattered multipliers.
const (
	weightPrimary = 0.9
	weightSupport = 0.4
	weightHint    = 0.2
)

// Defs returns the built-in rule definitions.
func Defs() []Rule {
	return []Rule{
		{
			ID:       "software_primary",
			Category: category.Software,
			Strong: []string{
				"系統", "軟體", "應用程式", "資料庫", "程式", "語言",
				"平台", "框架", "資料庫管理系統",
			},
			Patterns: []string{
				`系統$`, `軟體$`,
				`(?i)(windows|linux|unix|sql|mysql|oracle|\.net)`,
			},
			Exclude: []string{`防火牆設備`},
			Boost:   []string{"資料庫管理系統", "MySQL", "Oracle", "SQL Server", "Windows", "Linux"},
			Veto:    []string{"防火牆設備", "網路設備", "儲存設備"},
			Weight:  weightPrimary,
		},
		{
			ID:       "software_support",
			Category: category.Software,
			Strong:   []string{"server", "java", "python", "asp", "ERP", "CRM"},
			Patterns: []string{`(?i)(開發|版本控制)`},
			Exclude:  []string{`防火牆設備`},
			Weight:   weightSupport,
		},
		{
			ID:       "software_hint",
			Category: category.Software,
			Strong:   []string{"工具", "模組", "套件"},
			Weight:   weightHint,
		},
		{
			ID:       "hardware_primary",
			Category: category.Hardware,
			Strong: []string{
				"硬體", "設備", "伺服器", "主機", "電腦",
				"網路設備", "儲存設備", "防火牆設備", "監控設備", "安全設備",
			},
			Patterns: []string{`設備$`, `主機$`},
			Boost:    []string{"防火牆設備", "網路設備", "儲存設備", "監控設備", "安全設備"},
			Weight:   weightPrimary,
		},
		{
			ID:       "hardware_support",
			Category: category.Hardware,
			Strong:   []string{"交換器", "路由器", "防火牆", "印表機", "儲存"},
			Exclude:  []string{`儲存媒體`},
			Weight:   weightSupport,
		},
		{
			ID:       "physical_primary",
			Category: category.Physical,
			Strong: []string{
				"實體", "環境", "設施", "場所", "空間", "機房",
				"辦公室", "會議室", "資料中心", "儲存媒體",
			},
			Patterns: []string{`媒體$`},
			Boost:    []string{"可攜式儲存媒體", "機房", "資料中心"},
			Weight:   weightPrimary,
		},
		{
			ID:       "physical_support",
			Category: category.Physical,
			Strong:   []string{"建築", "場地", "位置", "區域", "地點", "處所"},
			Weight:   weightSupport,
		},
		{
			ID:       "data_primary",
			Category: category.Data,
			Strong: []string{
				"資料", "文件", "檔案", "紀錄", "合約", "文檔",
				"作業文件", "電子紀錄", "程序文件", "技術文件", "操作手冊",
			},
			Patterns: []string{`(?i)(sop|備份|日誌|原始碼)`},
			Exclude:  []string{`資料庫`, `資料中心`},
			Boost:    []string{"作業文件", "電子紀錄", "程序文件", "技術文件", "操作手冊", "SOP"},
			Weight:   weightPrimary,
		},
		{
			ID:       "data_support",
			Category: category.Data,
			Strong:   []string{"作業", "程序", "手冊", "報告", "資訊"},
			Exclude:  []string{`資料庫`, `作業系統`},
			Weight:   weightSupport,
		},
		{
			ID:       "personnel_primary",
			Category: category.Personnel,
			Strong: []string{
				"人員", "員工", "職員", "使用者", "用戶", "管理員", "承辦人",
			},
			Patterns: []string{`人員$`},
			Exclude:  []string{`文件`, `檔案`, `紀錄`, `程序`, `設備`, `資料庫`},
			Boost:    []string{"內部人員", "外部人員", "承辦人", "管理員", "使用者"},
			Veto:     []string{"作業文件", "電子紀錄", "程序文件", "技術文件"},
			Weight:   weightPrimary,
		},
		{
			ID:       "personnel_support",
			Category: category.Personnel,
			Strong:   []string{"客戶", "廠商", "委外"},
			Patterns: []string{`(內部|外部).*(人|者)`},
			Exclude:  []string{`文件`, `檔案`, `服務`, `系統`},
			Weight:   weightSupport,
		},
		{
			ID:       "service_primary",
			Category: category.Service,
			Strong: []string{
				"服務", "應用服務", "系統服務", "網路服務", "雲端服務", "資料服務",
			},
			Patterns: []string{`服務$`},
			Boost:    []string{"網路服務", "應用服務", "資料服務", "雲端服務", "API"},
			Weight:   weightPrimary,
		},
		{
			ID:       "service_support",
			Category: category.Service,
			Strong:   []string{"網站", "入口網站"},
			Patterns: []string{`(?i)\b(api|web)\b`},
			Exclude:  []string{`伺服器`},
			Weight:   weightSupport,
		},
	}
}
