package app

//go:generate go run github.com/Azhovan/appprops/cmd/appprops-gen

// Settings is loaded from settings.yaml.
//
//appprops:load src=settings.yaml
type Settings struct {
	Timeout string `yaml:"timeout"`
}

// Feed is loaded from feed.json.
//
//appprops:load src="feed.json"
type Feed struct {
	URL string `json:"url"`
}
