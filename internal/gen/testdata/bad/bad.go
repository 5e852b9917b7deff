package bad

//appprops:load src=missing.yaml
type Settings struct {
	Timeout string `yaml:"timeout"`
}

//appprops:load src=settings.yaml extra=1
type Other struct{}
