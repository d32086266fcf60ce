package catalogservice

// Console модель консоли из каталога
type Console struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Company  string `json:"company"`
	ImageURL string `json:"image_url"`
}

// Game модель игры из каталога
type Game struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Genre      string `json:"genre"`
	MaxPlayers int    `json:"max_players"`
	ImageURL   string `json:"image_url"`
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
