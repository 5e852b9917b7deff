package clash

func yaml() string { return "not the decoder" }

//appprops:load src=settings.yaml
type Settings struct {
	Timeout string `yaml:"timeout"`
}
