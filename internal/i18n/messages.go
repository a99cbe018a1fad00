// Package i18n holds the user-facing strings of the registration API.
// Arabic is the default; English is served to clients that prefer it.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Key identifies a user-facing message.
type Key string

const (
	MissingFields Key = "missing_fields"
	SaveFailed    Key = "save_failed"
	GenericError  Key = "generic_error"
	Registered    Key = "registered"
)

// supported is ordered by preference; the first entry is the fallback.
var supported = []language.Tag{language.Arabic, language.English}

var (
	matcher = language.NewMatcher(supported)
	cat     = catalog.NewBuilder(catalog.Fallback(language.Arabic))
)

var messages = map[language.Tag]map[Key]string{
	language.Arabic: {
		MissingFields: "حدث خطأ: جميع الحقول المطلوبة يجب ملؤها",
		SaveFailed:    "حدث خطأ في حفظ البيانات: ",
		GenericError:  "حدث خطأ: ",
		Registered:    "شكرًا لتسجيل اهتمامك بـ «مكتوب». سنقوم بالتواصل معك فور توفر النسخة التجريبية.",
	},
	language.English: {
		MissingFields: "An error occurred: all required fields must be filled in",
		SaveFailed:    "An error occurred while saving your data: ",
		GenericError:  "An error occurred: ",
		Registered:    "Thank you for registering your interest in Maktoub. We will contact you as soon as the beta is available.",
	},
}

func init() {
	for tag, msgs := range messages {
		for key, msg := range msgs {
			if err := cat.SetString(tag, string(key), msg); err != nil {
				panic(err)
			}
		}
	}
}

// Localizer renders messages in one language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// ForAcceptLanguage picks the best supported language for an Accept-Language header.
func ForAcceptLanguage(header string) Localizer {
	tags, _, _ := language.ParseAcceptLanguage(header)
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		idx = 0
	}
	return For(supported[idx])
}

// For returns a Localizer for a supported tag.
func For(tag language.Tag) Localizer {
	return Localizer{tag: tag, printer: message.NewPrinter(tag, message.Catalog(cat))}
}

// Language is the tag messages are rendered in.
func (l Localizer) Language() language.Tag {
	return l.tag
}

// Text renders key. Message strings carry no format verbs.
func (l Localizer) Text(key Key) string {
	return l.printer.Sprintf(string(key))
}

// WithDetail appends an error's text to a prefix message such as SaveFailed.
func (l Localizer) WithDetail(key Key, err error) string {
	if err == nil {
		return l.Text(key)
	}
	return l.Text(key) + err.Error()
}
