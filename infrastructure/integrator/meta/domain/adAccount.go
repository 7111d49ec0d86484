package metadomain

type AdAccount struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next"`
}

// HasNext indica se há outra página; a Graph API omite "next" na última
func (p Paging) HasNext() bool {
	return p.Next != "" && p.Cursors.After != ""
}

type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
