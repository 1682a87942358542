package configloader

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Bootstrap 是所有进程共享的配置根，各进程只校验自己需要的片段。
type Bootstrap struct {
	Server    Server    `json:"server"`
	Data      Data      `json:"data"`
	Storage   Storage   `json:"storage"`
	Processor Processor `json:"processor"`
	Dashboard Dashboard `json:"dashboard"`
}

// Server 描述 HTTP 入口配置。
type Server struct {
	HTTP HTTP `json:"http" validate:"required"`
}

// HTTP 描述监听地址、请求超时与上传大小上限。
type HTTP struct {
	Network        string   `json:"network"`
	Addr           string   `json:"addr" validate:"required"`
	Timeout        Duration `json:"timeout"`
	MaxUploadBytes int64    `json:"max_upload_bytes" validate:"gte=0"`
}

// Data 聚合存储依赖。
type Data struct {
	Postgres Postgres `json:"postgres" validate:"required"`
}

// Postgres 描述连接池参数；DSN 为空时由 Host/Port/User 等拼装。
type Postgres struct {
	DSN                      string   `json:"dsn"`
	Host                     string   `json:"host" validate:"required_without=DSN"`
	Port                     int      `json:"port" validate:"omitempty,gt=0,lte=65535"`
	User                     string   `json:"user"`
	Password                 string   `json:"password"`
	Database                 string   `json:"database" validate:"required_without=DSN"`
	SSLMode                  string   `json:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	Schema                   string   `json:"schema"`
	MaxOpenConns             int32    `json:"max_open_conns" validate:"gte=0"`
	MinOpenConns             int32    `json:"min_open_conns" validate:"gte=0"`
	MaxConnLifetime          Duration `json:"max_conn_lifetime"`
	MaxConnIdleTime          Duration `json:"max_conn_idle_time"`
	HealthCheckPeriod        Duration `json:"health_check_period"`
	EnablePreparedStatements bool     `json:"enable_prepared_statements"`
}

// ConnString 返回最终使用的连接串：显式 DSN 优先，否则由各字段拼装。
func (p Postgres) ConnString() string {
	if p.DSN != "" {
		return p.DSN
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   p.Host,
		Path:   "/" + p.Database,
	}
	if p.Port > 0 {
		u.Host = p.Host + ":" + strconv.Itoa(p.Port)
	}
	if p.User != "" {
		if p.Password != "" {
			u.User = url.UserPassword(p.User, p.Password)
		} else {
			u.User = url.User(p.User)
		}
	}
	sslMode := p.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	q := url.Values{}
	q.Set("sslmode", sslMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Storage 描述对象存储。
type Storage struct {
	S3 S3 `json:"s3" validate:"required"`
}

// S3 描述 S3 bucket 与凭据；凭据为空时走 SDK 默认凭据链。
type S3 struct {
	Region          string `json:"region" validate:"required"`
	Bucket          string `json:"bucket" validate:"required"`
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" validate:"required_with=AccessKeyID"`
	Endpoint        string `json:"endpoint" validate:"omitempty,url"`
	UsePathStyle    bool   `json:"use_path_style"`
}

// Processor 描述上传服务如何触发处理服务，以及处理服务自身的 worker 参数。
type Processor struct {
	URL       string   `json:"url" validate:"omitempty,url"`
	Timeout   Duration `json:"timeout"`
	AMQP      AMQP     `json:"amqp"`
	Workers   int      `json:"workers" validate:"gte=0"`
	QueueSize int      `json:"queue_size" validate:"gte=0"`
}

// AMQP 可选：配置后上传服务改为向队列投递，处理服务同时消费该队列。
type AMQP struct {
	URL   string `json:"url"`
	Queue string `json:"queue"`
}

// Dashboard 描述仪表盘访问的两个 API 以及 URL 构造所需的 bucket 覆盖值。
type Dashboard struct {
	UploaderURL    string   `json:"uploader_url" validate:"required,url"`
	AnalyticsURL   string   `json:"analytics_url" validate:"required,url"`
	BucketOverride string   `json:"bucket_override"`
	PollInterval   Duration `json:"poll_interval"`
	Concurrency    int      `json:"concurrency" validate:"gte=0"`
}

// Duration 允许在 YAML/JSON 中书写 "5s" 形式的时长，也兼容纳秒整数。
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		*d = Duration(time.Duration(v))
		return nil
	case string:
		if v == "" {
			*d = 0
			return nil
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		*d = Duration(parsed)
		return nil
	case nil:
		*d = 0
		return nil
	default:
		return fmt.Errorf("invalid duration %v", raw)
	}
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
