package reddit

// listing is the envelope Reddit wraps around submissions and comments.
type listing struct {
	Kind string `json:"kind"`
	Data struct {
		After    string  `json:"after"`
		Children []thing `json:"children"`
	} `json:"data"`
}

// thing is a listing child; Kind is "t3" for submissions and "t1" for
// comments.
type thing struct {
	Kind string    `json:"kind"`
	Data thingData `json:"data"`
}

type thingData struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	SelfText  string `json:"selftext"`
	URL       string `json:"url"`
	Body      string `json:"body"`
	Permalink string `json:"permalink"`
}
