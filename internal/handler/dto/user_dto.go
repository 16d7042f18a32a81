package dto

// LeaderboardUserDTO представляет пользователя в глобальном лидерборде
type LeaderboardUserDTO struct {
	Rank     int    `json:"rank"`
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Level    int    `json:"level"`
	XP       int    `json:"xp"`
}

// PaginatedLeaderboardResponse представляет пагинированный ответ для лидерборда
type PaginatedLeaderboardResponse struct {
	Users   []*LeaderboardUserDTO `json:"users"`
	Total   int64                 `json:"total"`
	Page    int                   `json:"page"`
	PerPage int                   `json:"per_page"`
}

// MainCategoryDTO представляет категорию, в которой пользователь проходил
// квизы чаще всего, вместе с его статистикой в ней
type MainCategoryDTO struct {
	CategoryID        uint   `json:"category_id"`
	Name              string `json:"name"`
	Color             string `json:"color"`
	Icon              string `json:"icon"`
	AttemptCount      int    `json:"attempt_count"`
	AveragePercentage int    `json:"average_percentage"`
}

// AttemptCountResponse возвращает количество попыток пользователя
type AttemptCountResponse struct {
	Count int64 `json:"count"`
}
