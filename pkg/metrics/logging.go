package metrics

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/sirupsen/logrus"
)

// CustomNewRelicContextLogFormatter wraps a logrus.Formatter, forwarding every
// entry to New Relic with its fields flattened into the message. The stock
// nrlogrus formatter drops fields.
type CustomNewRelicContextLogFormatter struct {
	app       *newrelic.Application
	formatter logrus.Formatter
}

func NewCustomNewRelicLogFormatter(app *newrelic.Application, formatter logrus.Formatter) CustomNewRelicContextLogFormatter {
	return CustomNewRelicContextLogFormatter{
		app:       app,
		formatter: formatter,
	}
}

func (f CustomNewRelicContextLogFormatter) Format(e *logrus.Entry) ([]byte, error) {
	logData := newrelic.LogData{
		Severity: e.Level.String(),
		Message:  forwardedMessage(e),
	}

	formatted, err := f.formatter.Format(e)
	if err != nil {
		return nil, err
	}
	b := bytes.NewBuffer(bytes.TrimRight(formatted, "\n"))

	var txn *newrelic.Transaction
	if e.Context != nil {
		txn = newrelic.FromContext(e.Context)
	}

	var metadata newrelic.EnricherOption
	if txn != nil {
		txn.RecordLog(logData)
		metadata = newrelic.FromTxn(txn)
	} else {
		f.app.RecordLog(logData)
		metadata = newrelic.FromApp(f.app)
	}
	if err := newrelic.EnrichLog(b, metadata); err != nil {
		return nil, err
	}

	b.WriteString("\n")
	return b.Bytes(), nil
}

// forwardedMessage renders the entry as
// message="...", error="...", data={...}
func forwardedMessage(e *logrus.Entry) string {
	if len(e.Data) == 0 {
		return e.Message
	}

	errorString := "<nil>"
	extraData := make(map[string]interface{})
	for k, v := range e.Data {
		if k != logrus.ErrorKey {
			extraData[k] = v
			continue
		}
		if typed, ok := v.(error); ok {
			errorString = fmt.Sprintf("%q", typed.Error())
		}
	}

	extraDataJsonBytes, err := json.Marshal(extraData)
	if err != nil {
		return e.Message
	}
	return fmt.Sprintf("message=%q, error=%s, data=%s", e.Message, errorString, string(extraDataJsonBytes))
}
