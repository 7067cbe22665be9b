package services

// Connection is one third-party integration shown on the connections tab.
// The catalog is static; connection state is not part of the settings
// document.
type Connection struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	Connected   bool   `json:"connected"`
	Description string `json:"description"`
}

func Connections() []Connection {
	return []Connection{
		{Name: "Discord", Status: "Connected", Connected: true, Description: "Sync your Discord profile and activities"},
		{Name: "Telegram", Status: "Not connected", Connected: false, Description: "Get notifications through Telegram bot"},
		{Name: "GitHub", Status: "Connected", Connected: true, Description: "Import repositories and contributions"},
		{Name: "LinkedIn", Status: "Not connected", Connected: false, Description: "Share your professional achievements"},
	}
}
