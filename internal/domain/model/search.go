package model

// SearchCriteria is the raw search form submission, held per user in the
// session store between submission and the paginated results requests.
// ISBN and Rating stay strings here; parsing (with lenient fallbacks)
// happens when the results query is built.
type SearchCriteria struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	ISBN    string `json:"isbn"`
	Rating  string `json:"rating"`
	Genre   string `json:"genre"`
	Private bool   `json:"private"`
}
