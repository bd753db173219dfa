package tag

type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Count is the number of items carrying this tag, filled by List.
	Count int `json:"count"`
}
