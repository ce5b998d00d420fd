package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// ColoredFormatter renders one colored line per entry: time, level, message,
// then the fields sorted with the query-identifying ones first.
type ColoredFormatter struct {
	TimestampFormat string
	// SortingFunc orders field keys; nil sorts alphabetically
	SortingFunc func([]string) []string
	// DisableColors is set when output is not a terminal
	DisableColors bool
}

func NewColoredFormatter() *ColoredFormatter {
	return &ColoredFormatter{
		TimestampFormat: time.RFC3339,
		SortingFunc:     defaultFieldSorting,
	}
}

// priorityFields are printed first, in this order, and highlighted.
var priorityFields = map[string]int{
	"time":      1,
	"level":     2,
	"msg":       3,
	"operation": 4,
	"method":    5,
	"trend":     6,
	"username":  7,
	"error":     8,
}

func (f *ColoredFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	data := make(logrus.Fields, len(entry.Data)+3)
	for k, v := range entry.Data {
		data[k] = v
	}
	data["level"] = entry.Level.String()
	data["msg"] = entry.Message
	data["time"] = entry.Time.Format(f.TimestampFormat)

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	if f.SortingFunc != nil {
		keys = f.SortingFunc(keys)
	} else {
		sort.Strings(keys)
	}

	b := entry.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}

	levelColor := f.paint(levelAttribute(entry.Level)...)
	timeColor := f.paint(color.FgYellow)
	valueColor := f.paint(color.FgWhite)

	b.WriteString(timeColor.Sprint(data["time"]))
	b.WriteByte(' ')
	b.WriteString(levelColor.Sprintf("%-7s", strings.ToUpper(entry.Level.String())))
	b.WriteByte(' ')
	b.WriteString(levelColor.Sprint(entry.Message))

	for _, k := range keys {
		if k == "time" || k == "level" || k == "msg" {
			continue
		}

		keyColor := f.paint(color.FgCyan)
		if _, ok := priorityFields[k]; ok {
			keyColor = f.paint(color.FgGreen)
		}

		b.WriteByte(' ')
		b.WriteString(keyColor.Sprintf("%s=", k))
		b.WriteString(valueColor.Sprint(formatValue(data[k])))
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

func (f *ColoredFormatter) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if f.DisableColors {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c
}

func formatValue(v interface{}) string {
	switch v := v.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case error:
		return fmt.Sprintf("%q", v.Error())
	case fmt.Stringer:
		return fmt.Sprintf("%q", v.String())
	default:
		jsonBytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(jsonBytes)
	}
}

func levelAttribute(level logrus.Level) []color.Attribute {
	switch level {
	case logrus.TraceLevel, logrus.DebugLevel:
		return []color.Attribute{color.FgBlue}
	case logrus.InfoLevel:
		return []color.Attribute{color.FgGreen}
	case logrus.WarnLevel:
		return []color.Attribute{color.FgYellow}
	case logrus.ErrorLevel:
		return []color.Attribute{color.FgRed}
	case logrus.FatalLevel, logrus.PanicLevel:
		return []color.Attribute{color.FgRed, color.Bold}
	default:
		return []color.Attribute{color.FgWhite}
	}
}

func defaultFieldSorting(keys []string) []string {
	sort.Slice(keys, func(i, j int) bool {
		iPriority := priorityFields[keys[i]]
		jPriority := priorityFields[keys[j]]
		if iPriority != 0 && jPriority != 0 {
			return iPriority < jPriority
		}
		if iPriority != 0 {
			return true
		}
		if jPriority != 0 {
			return false
		}
		return keys[i] < keys[j]
	})
	return keys
}
