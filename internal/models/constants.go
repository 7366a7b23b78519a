package models

// AnalysisStatus константы статусов анализа ассета.
// Приложение выставляет только pending, остальные переходы делает внешний обработчик.
const (
	AnalysisStatusPending    = "pending"
	AnalysisStatusProcessing = "processing"
	AnalysisStatusCompleted  = "completed"
	AnalysisStatusFailed     = "failed"
)

// Демо-записи, которые создаёт сидирование.
const (
	DemoUserID          = "demo-user"
	DemoUserEmail       = "demo@mediadb.local"
	DemoUserDisplayName = "Demo User"
	DemoWorkspaceID     = "demo-workspace"
	DemoWorkspaceName   = "Demo Workspace"
)

// MaxAssetListSize ограничение размера выдачи списка ассетов.
const MaxAssetListSize = 100

// MaxCategoryNameLength максимальная длина имени категории в символах.
const MaxCategoryNameLength = 64
