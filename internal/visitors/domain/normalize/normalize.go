// Package normalize приводит введенные пользователем значения к виду хранения
// и строит из хранимых значений вид для отображения.
//
// Все функции чистые и тотальные: на любом входе они возвращают результат,
// а значение с неподходящим числом цифр отображается без изменений.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// Все, кроме кириллицы, латиницы, пробельных символов и дефиса.
	disallowedNameChars = regexp.MustCompile(`[^\p{Cyrillic}A-Za-z\s\-]`)
	whitespaceRun       = regexp.MustCompile(`\s+`)
)

// FullName очищает ФИО и переводит каждое слово в регистр заголовка.
func FullName(raw string) string {
	value := cleanText(raw)
	// Caser хранит состояние, поэтому создается на каждый вызов.
	value = cases.Title(language.Russian).String(value)
	return strings.TrimSpace(value)
}

// Position очищает должность без изменения регистра.
func Position(raw string) string {
	return strings.TrimSpace(cleanText(raw))
}

func cleanText(raw string) string {
	value := disallowedNameChars.ReplaceAllString(raw, "")
	return whitespaceRun.ReplaceAllString(value, " ")
}

// Digits оставляет в строке только цифры 0-9.
func Digits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Phone форматирует хранимый телефон как 7(XXX)XXX-XX-XX.
func Phone(stored string) string {
	d := Digits(stored)
	if len(d) != 11 || d[0] != '7' {
		return stored
	}
	return "7(" + d[1:4] + ")" + d[4:7] + "-" + d[7:9] + "-" + d[9:11]
}

// PassportSeries форматирует серию паспорта как "XX XX".
func PassportSeries(stored string) string {
	d := Digits(stored)
	if len(d) != 4 {
		return stored
	}
	return d[:2] + " " + d[2:]
}

// DepartmentCode форматирует код подразделения как "XXX-XXX".
func DepartmentCode(stored string) string {
	d := Digits(stored)
	if len(d) != 6 {
		return stored
	}
	return d[:3] + "-" + d[3:]
}

// LicenseSeriesNumber форматирует серию и номер удостоверения как "XX XX XXXXXX".
func LicenseSeriesNumber(stored string) string {
	d := Digits(stored)
	if len(d) != 10 {
		return stored
	}
	return d[:2] + " " + d[2:4] + " " + d[4:]
}
