package logger

import (
	"context"
	"os"
	"time"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
)

const (
	dataDogQueueSize      = 1024
	dataDogBatchSize      = 100
	dataDogFlushInterval  = time.Second
	dataDogDefaultTimeout = 5 * time.Second
	dataDogSource         = "go"
)

// DataDogWriter ships log lines to the DataDog logs intake.
// Lines are queued and submitted in batches by a background goroutine,
// a full queue drops lines instead of blocking the caller.
type DataDogWriter struct {
	api     *datadogV2.LogsApi
	ctx     context.Context //nolint:containedctx
	service string
	tags    string
	host    string
	timeout time.Duration
	queue   chan string
	done    chan struct{}
}

// NewDataDogWriter creates a DataDogWriter from the log config and starts its sender.
func NewDataDogWriter(cfg Log) (*DataDogWriter, error) {
	if cfg.DataDog.APIKey == "" {
		return nil, ErrDataDogAPIKeyIsEmpty
	}

	ctx := context.WithValue(
		context.Background(),
		datadog.ContextAPIKeys,
		map[string]datadog.APIKey{
			"apiKeyAuth": {Key: cfg.DataDog.APIKey},
		},
	)

	if cfg.DataDog.Site != "" {
		ctx = context.WithValue(ctx, datadog.ContextServerVariables, map[string]string{
			"site": cfg.DataDog.Site,
		})
	}

	service := cfg.DataDog.ServiceName
	if service == "" {
		service = cfg.ServiceName
	}

	timeout := cfg.DataDog.Timeout
	if timeout == 0 {
		timeout = dataDogDefaultTimeout
	}

	host, _ := os.Hostname()

	w := &DataDogWriter{
		api:     datadogV2.NewLogsApi(datadog.NewAPIClient(datadog.NewConfiguration())),
		ctx:     ctx,
		service: service,
		tags:    cfg.DataDog.Tags,
		host:    host,
		timeout: timeout,
		queue:   make(chan string, dataDogQueueSize),
		done:    make(chan struct{}),
	}

	go w.run()

	return w, nil
}

// Write implements io.Writer.
func (w *DataDogWriter) Write(p []byte) (int, error) {
	select {
	case w.queue <- string(p):
	default:
		// queue full, drop the line
	}

	return len(p), nil
}

// Close flushes pending lines and stops the sender.
func (w *DataDogWriter) Close() error {
	close(w.queue)
	<-w.done

	return nil
}

func (w *DataDogWriter) run() {
	defer close(w.done)

	ticker := time.NewTicker(dataDogFlushInterval)
	defer ticker.Stop()

	batch := make([]datadogV2.HTTPLogItem, 0, dataDogBatchSize)

	for {
		select {
		case line, ok := <-w.queue:
			if !ok {
				w.submit(batch)
				return
			}

			batch = append(batch, w.item(line))
			if len(batch) >= dataDogBatchSize {
				w.submit(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			w.submit(batch)
			batch = batch[:0]
		}
	}
}

func (w *DataDogWriter) item(line string) datadogV2.HTTPLogItem {
	item := datadogV2.HTTPLogItem{
		Ddsource: datadog.PtrString(dataDogSource),
		Hostname: datadog.PtrString(w.host),
		Message:  line,
		Service:  datadog.PtrString(w.service),
	}

	if w.tags != "" {
		item.Ddtags = datadog.PtrString(w.tags)
	}

	return item
}

func (w *DataDogWriter) submit(batch []datadogV2.HTTPLogItem) {
	if len(batch) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(w.ctx, w.timeout)
	defer cancel()

	// the global logger may write to this writer, report failures on stderr only
	if _, _, err := w.api.SubmitLog(ctx, batch, *datadogV2.NewSubmitLogOptionalParameters()); err != nil {
		ErrorHandler(err)
	}
}
