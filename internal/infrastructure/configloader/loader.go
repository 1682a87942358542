// Package configloader 负责加载 YAML 配置、应用环境变量覆盖并按进程所需片段校验。
package configloader

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	envConfPath       = "CONF_PATH"
	envServiceName    = "SERVICE_NAME"
	envServiceVersion = "SERVICE_VERSION"
	envAppEnv         = "APP_ENV"
	envPort           = "PORT"

	envDatabaseURL = "DATABASE_URL"
	envDBHost      = "DB_HOST"
	envDBPort      = "DB_PORT"
	envDBUser      = "DB_USER"
	envDBPassword  = "DB_PASSWORD"
	envDBName      = "DB_NAME"
	envDBSSLMode   = "DB_SSLMODE"

	envAWSRegion       = "AWS_REGION"
	envAWSAccessKeyID  = "AWS_ACCESS_KEY_ID"
	envAWSSecretKey    = "AWS_SECRET_ACCESS_KEY"
	envS3Bucket        = "S3_BUCKET_NAME"
	envS3Endpoint      = "S3_ENDPOINT"
	envProcessorURL    = "PROCESSOR_API_URL"
	envProcessorAMQP   = "PROCESSOR_AMQP_URL"
	envUploaderURL     = "UPLOADER_API_URL"
	envAnalyticsURL    = "ANALYTICS_API_URL"
	envDashboardBucket = "DASHBOARD_S3_BUCKET_NAME"
)

var envFileNames = []string{".env.local", ".env"}

// Section 标识一个需要校验的配置片段。
type Section string

const (
	SectionServer    Section = "server"
	SectionData      Section = "data"
	SectionStorage   Section = "storage"
	SectionProcessor Section = "processor"
	SectionDashboard Section = "dashboard"
)

// Params 包含构造配置所需的运行时输入参数。
type Params struct {
	ConfPath    string    // 配置文件路径（可为空，使用默认值）
	ServiceName string    // SERVICE_NAME 未设置时使用
	Sections    []Section // 需要校验的片段；为空时不做校验
}

// ServiceMetadata 保存服务标识信息，供日志组件使用。
type ServiceMetadata struct {
	Name        string
	Version     string
	Environment string
	InstanceID  string
}

// Loader 聚合强类型配置与服务元信息，供 Wire 注入使用。
type Loader struct {
	Bootstrap *Bootstrap
	Service   ServiceMetadata
	ConfPath  string
}

// BuildError 捕获配置构建过程中的上下文错误信息。
type BuildError struct {
	Stage string
	Path  string
	Err   error
}

// Error 实现 error 接口，提供包含上下文的错误信息。
func (e BuildError) Error() string {
	if e.Stage == "" {
		return e.Err.Error()
	}
	if e.Path != "" {
		return fmt.Sprintf("config %s at %q: %v", e.Stage, e.Path, e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Stage, e.Err)
}

// Unwrap 暴露底层错误，支持 errors.Is/As 链式查询。
func (e BuildError) Unwrap() error {
	return e.Err
}

// Build 加载配置并返回 Loader。
//
// 流程：
// 1. 解析配置路径并加载 .env 文件
// 2. 从 Defaults 开始，叠加配置文件（文件不存在时跳过）
// 3. 应用环境变量覆盖
// 4. 按 Params.Sections 校验
func Build(params Params) (*Loader, error) {
	confPath := ResolveConfPath(params.ConfPath)
	loadEnvFiles(confPath)

	bc, err := loadBootstrap(confPath)
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(bc)
	fillZeroValues(bc)

	if err := Validate(bc, params.Sections...); err != nil {
		return nil, BuildError{Stage: "validate", Path: confPath, Err: err}
	}

	return &Loader{
		Bootstrap: bc,
		Service:   buildServiceMetadata(params.ServiceName),
		ConfPath:  confPath,
	}, nil
}

// ResolveConfPath 应用回退规则确定要加载的配置目录/文件路径。
// 优先级：显式传入路径 > CONF_PATH 环境变量 > 默认路径。
func ResolveConfPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(envConfPath); env != "" {
		return env
	}
	return defaultConfPath
}

// Validate 使用 validator 校验指定的配置片段。
func Validate(bc *Bootstrap, sections ...Section) error {
	if bc == nil {
		return errors.New("bootstrap config is nil")
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	for _, s := range sections {
		var target any
		switch s {
		case SectionServer:
			target = bc.Server
		case SectionData:
			target = bc.Data
		case SectionStorage:
			target = bc.Storage
		case SectionProcessor:
			target = bc.Processor
		case SectionDashboard:
			target = bc.Dashboard
		default:
			return fmt.Errorf("unknown config section %q", s)
		}
		if err := v.Struct(target); err != nil {
			return fmt.Errorf("%s: %w", s, err)
		}
	}
	return nil
}

// loadBootstrap 从指定路径加载配置；路径不存在时返回默认配置。
//
// 错误阶段：
//   - "load": 文件读取失败
//   - "scan": YAML/JSON 解析失败
func loadBootstrap(confPath string) (*Bootstrap, error) {
	bc := Defaults()
	if _, err := os.Stat(confPath); errors.Is(err, fs.ErrNotExist) {
		return &bc, nil
	}

	c := config.New(config.WithSource(file.NewSource(confPath)))
	if err := c.Load(); err != nil {
		return nil, BuildError{Stage: "load", Path: confPath, Err: err}
	}
	defer c.Close()

	if err := c.Scan(&bc); err != nil {
		return nil, BuildError{Stage: "scan", Path: confPath, Err: err}
	}
	return &bc, nil
}

// applyEnvOverrides 应用环境变量覆盖配置文件中的特定字段。
// 环境变量为空时不覆盖，保留配置文件原值。
func applyEnvOverrides(bc *Bootstrap) {
	if bc == nil {
		return
	}
	pg := &bc.Data.Postgres
	setString(&pg.DSN, envDatabaseURL)
	setString(&pg.Host, envDBHost)
	setString(&pg.User, envDBUser)
	setString(&pg.Password, envDBPassword)
	setString(&pg.Database, envDBName)
	setString(&pg.SSLMode, envDBSSLMode)
	if port := os.Getenv(envDBPort); port != "" {
		var p int
		if _, err := fmt.Sscanf(port, "%d", &p); err == nil {
			pg.Port = p
		}
	}

	s3 := &bc.Storage.S3
	setString(&s3.Region, envAWSRegion)
	setString(&s3.AccessKeyID, envAWSAccessKeyID)
	setString(&s3.SecretAccessKey, envAWSSecretKey)
	setString(&s3.Bucket, envS3Bucket)
	setString(&s3.Endpoint, envS3Endpoint)
	if s3.Endpoint != "" {
		s3.UsePathStyle = true
	}

	setString(&bc.Processor.URL, envProcessorURL)
	setString(&bc.Processor.AMQP.URL, envProcessorAMQP)

	setString(&bc.Dashboard.UploaderURL, envUploaderURL)
	setString(&bc.Dashboard.AnalyticsURL, envAnalyticsURL)
	setString(&bc.Dashboard.BucketOverride, envDashboardBucket)

	// 覆盖 HTTP 监听端口（保留 host）
	if port := os.Getenv(envPort); port != "" {
		bc.Server.HTTP.Addr = replacePort(bc.Server.HTTP.Addr, port)
	}
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// buildServiceMetadata 构建服务元信息，用于日志标签。
// 优先级：环境变量 > 调用方传入的 fallback > 默认值。
func buildServiceMetadata(fallbackName string) ServiceMetadata {
	name := os.Getenv(envServiceName)
	if name == "" {
		name = fallbackName
	}
	if name == "" {
		name = "videohub"
	}
	version := os.Getenv(envServiceVersion)
	if version == "" {
		version = "dev"
	}
	env := os.Getenv(envAppEnv)
	if env == "" {
		env = defaultEnvironment
	}
	host, _ := os.Hostname()
	if host == "" {
		host = "unknown"
	}
	return ServiceMetadata{
		Name:        name,
		Version:     version,
		Environment: env,
		InstanceID:  host,
	}
}

// loadEnvFiles best-effort 加载配置相关的 .env 文件，失败时忽略。
func loadEnvFiles(confPath string) {
	files := envFileCandidates(confPath)
	if len(files) == 0 {
		return
	}
	_ = godotenv.Load(files...)
}

// envFileCandidates 按优先级返回存在的 .env 文件：confPath 目录优先，其次工作目录。
// godotenv 按顺序加载，先加载的值不会被后面的文件覆盖。
func envFileCandidates(confPath string) []string {
	dirs := orderedDirs(confPath)
	seen := make(map[string]struct{})
	var files []string
	for _, dir := range dirs {
		for _, name := range envFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			if _, ok := seen[candidate]; ok {
				continue
			}
			files = append(files, candidate)
			seen[candidate] = struct{}{}
		}
	}
	return files
}

func orderedDirs(confPath string) []string {
	var dirs []string
	appendUnique := func(path string) {
		if path == "" {
			return
		}
		clean := filepath.Clean(path)
		for _, existing := range dirs {
			if existing == clean {
				return
			}
		}
		dirs = append(dirs, clean)
	}

	if confPath != "" {
		if info, err := os.Stat(confPath); err == nil {
			if info.IsDir() {
				appendUnique(confPath)
			} else {
				appendUnique(filepath.Dir(confPath))
			}
		}
	}
	if cwd, err := os.Getwd(); err == nil {
		appendUnique(cwd)
	}
	return dirs
}

// replacePort 替换地址中的端口部分，保留 host。
//   - "0.0.0.0:9090" -> "0.0.0.0:8080"
//   - "[::1]:9090" -> "[::1]:8080"
func replacePort(addr, newPort string) string {
	if addr == "" {
		return "0.0.0.0:" + newPort
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return "0.0.0.0:" + newPort
	}
	return net.JoinHostPort(host, newPort)
}
