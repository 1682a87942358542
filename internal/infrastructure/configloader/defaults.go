package configloader

import "time"

const (
	defaultConfPath       = "configs"
	defaultEnvironment    = "development"
	defaultHTTPAddr       = "0.0.0.0:8080"
	defaultHTTPTimeout    = 30 * time.Second
	defaultMaxUploadBytes = 512 << 20
	defaultRegion         = "us-east-1"
	defaultProcessorURL   = "http://localhost:3000/process"
	defaultProcessorWait  = 10 * time.Second
	defaultAMQPQueue      = "video_processing_queue"
	defaultWorkers        = 2
	defaultQueueSize      = 64
	defaultUploaderURL    = "http://localhost:8081"
	defaultAnalyticsURL   = "http://localhost:8083"
	defaultPollInterval   = 5 * time.Second
	defaultConcurrency    = 8
	defaultPostgresPort   = 5432
)

// Defaults 返回未加载任何配置文件时的基线配置。
func Defaults() Bootstrap {
	return Bootstrap{
		Server: Server{HTTP: HTTP{
			Addr:           defaultHTTPAddr,
			Timeout:        Duration(defaultHTTPTimeout),
			MaxUploadBytes: defaultMaxUploadBytes,
		}},
		Data: Data{Postgres: Postgres{
			Port:         defaultPostgresPort,
			MaxOpenConns: 10,
		}},
		Storage: Storage{S3: S3{Region: defaultRegion}},
		Processor: Processor{
			URL:       defaultProcessorURL,
			Timeout:   Duration(defaultProcessorWait),
			AMQP:      AMQP{Queue: defaultAMQPQueue},
			Workers:   defaultWorkers,
			QueueSize: defaultQueueSize,
		},
		Dashboard: Dashboard{
			UploaderURL:  defaultUploaderURL,
			AnalyticsURL: defaultAnalyticsURL,
			PollInterval: Duration(defaultPollInterval),
			Concurrency:  defaultConcurrency,
		},
	}
}

// fillZeroValues 在文件加载后补齐被显式清空的关键字段。
func fillZeroValues(bc *Bootstrap) {
	if bc.Server.HTTP.Addr == "" {
		bc.Server.HTTP.Addr = defaultHTTPAddr
	}
	if bc.Server.HTTP.MaxUploadBytes == 0 {
		bc.Server.HTTP.MaxUploadBytes = defaultMaxUploadBytes
	}
	if bc.Storage.S3.Region == "" {
		bc.Storage.S3.Region = defaultRegion
	}
	if bc.Processor.Timeout <= 0 {
		bc.Processor.Timeout = Duration(defaultProcessorWait)
	}
	if bc.Processor.AMQP.Queue == "" {
		bc.Processor.AMQP.Queue = defaultAMQPQueue
	}
	if bc.Processor.Workers <= 0 {
		bc.Processor.Workers = defaultWorkers
	}
	if bc.Processor.QueueSize <= 0 {
		bc.Processor.QueueSize = defaultQueueSize
	}
	if bc.Dashboard.PollInterval <= 0 {
		bc.Dashboard.PollInterval = Duration(defaultPollInterval)
	}
	if bc.Dashboard.Concurrency <= 0 {
		bc.Dashboard.Concurrency = defaultConcurrency
	}
}
