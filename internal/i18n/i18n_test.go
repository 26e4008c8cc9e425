package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedBundles(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "jp"}, c.Languages())

	en := c.Localizer("en")
	assert.Equal(t, "Employee List", en.T("employee:title"))
	assert.Equal(t, "Name", en.T("employee:form.fields.name"))
	assert.Equal(t, "Must be at least 6 characters", en.T("message:min_length", Args{"min": 6}))

	jp := c.Localizer("jp")
	assert.Equal(t, "従業員一覧", jp.T("employee:title"))
}

func TestEveryLanguageHasTheSameKeys(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	for ns, keys := range c.langs[Fallback] {
		for key := range keys {
			for _, lang := range c.Languages() {
				_, ok := c.langs[lang][ns][key]
				assert.True(t, ok, "%s missing %s:%s", lang, ns, key)
			}
		}
	}
}

func TestFallbacks(t *testing.T) {
	fsys := fstest.MapFS{
		"en/message.yaml": {Data: []byte("hello: Hello {{ name }}\nonly_en: English only\n")},
		"jp/message.yaml": {Data: []byte("hello: こんにちは {{name}}\n")},
	}
	c, err := LoadFS(fsys)
	require.NoError(t, err)

	jp := c.Localizer("jp")
	assert.Equal(t, "こんにちは Ada", jp.T("message:hello", Args{"name": "Ada"}))
	assert.Equal(t, "English only", jp.T("message:only_en"))
	assert.Equal(t, "message:missing", jp.T("message:missing"))
	assert.Equal(t, "no-namespace", jp.T("no-namespace"))

	unknown := c.Localizer("fr")
	assert.Equal(t, Fallback, unknown.Lang())
	assert.Equal(t, "Hello {{ name }}", unknown.T("message:hello"))
	assert.Equal(t, "Hello {{ name }}", unknown.T("message:hello", Args{"other": 1}))
}
