package i18n

import (
	"embed"
	"encoding/json"
	"io/fs"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator resolves message IDs against the embedded locale files.
type Translator struct {
	bundle   *goi18n.Bundle
	fallback string
}

// New builds a translator whose fallback language is defaultLang ("ko", "en").
func New(defaultLang string) (*Translator, error) {
	tag, err := language.Parse(defaultLang)
	if err != nil {
		return nil, err
	}

	bundle := goi18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	files, err := fs.Glob(localeFS, "locales/*.json")
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(localeFS, f); err != nil {
			return nil, err
		}
	}

	return &Translator{bundle: bundle, fallback: tag.String()}, nil
}

// Load adds an extra locale file from disk, overriding embedded messages with the same ID.
func (t *Translator) Load(path string) error {
	_, err := t.bundle.LoadMessageFile(path)
	return err
}

// T localizes id for lang. lang may be a plain tag or a raw Accept-Language value.
// When the message cannot be resolved the id itself is returned.
func (t *Translator) T(lang, id string, data map[string]interface{}) string {
	localizer := goi18n.NewLocalizer(t.bundle, lang, t.fallback)
	msg, err := localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return msg
}

func (t *Translator) DefaultLanguage() string {
	return t.fallback
}
