package config

// StatusVersion is the "version" object of the status JSON document.
type StatusVersion struct {
	Name     string `json:"name"`
	Protocol int    `json:"protocol"`
}

// StatusPlayers is the "players" object of the status JSON document. Sample
// is always empty; online is supplied by the server's live player counter.
type StatusPlayers struct {
	Max    int           `json:"max"`
	Online int           `json:"online"`
	Sample []StatusSample `json:"sample"`
}

// StatusSample would describe one listed player; the sample list is always
// empty in this server, but the field must still marshal as `[]`, not null.
type StatusSample struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// StatusDescription is the "description" object of the status JSON document.
type StatusDescription struct {
	Text string `json:"text"`
}

// Status is the exact shape of the server-list ping response.
type Status struct {
	Version     StatusVersion     `json:"version"`
	Players     StatusPlayers     `json:"players"`
	Description StatusDescription `json:"description"`
	Favicon     string            `json:"favicon"`
}

// Status builds the status document for the current online count.
func (c *Config) Status(online int) Status {
	return Status{
		Version:     StatusVersion{Name: c.Version, Protocol: c.VersionProtocol},
		Players:     StatusPlayers{Max: c.MaxPlayers, Online: online, Sample: []StatusSample{}},
		Description: StatusDescription{Text: c.Description},
		Favicon:     c.Favicon,
	}
}
