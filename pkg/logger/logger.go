// Package logger provides an asynchronous structured logger for the portal API.
// Entries are batched on a channel and written as JSON lines to a rotating file.
package logger

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel represents the severity level of a log entry
type LogLevel string

const (
	LevelDebug LogLevel = "DEBUG"
	LevelInfo  LogLevel = "INFO"
	LevelWarn  LogLevel = "WARN"
	LevelError LogLevel = "ERROR"
	LevelFatal LogLevel = "FATAL"
)

var levelWeight = map[LogLevel]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
	LevelFatal: 4,
}

// ParseLevel converte o texto de LOG_LEVEL; valores desconhecidos viram INFO
func ParseLevel(s string) LogLevel {
	lvl := LogLevel(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := levelWeight[lvl]; ok {
		return lvl
	}
	return LevelInfo
}

// LogEntry represents the complete structure of a log record
type LogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"@timestamp"`
	Level     LogLevel  `json:"level"`
	Message   string    `json:"message"`
	Logger    string    `json:"logger"`

	Service     string `json:"service"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Hostname    string `json:"hostname"`
	PID         int    `json:"pid"`

	ExecID string `json:"exec_id"`

	Caller struct {
		File     string `json:"file"`
		Line     int    `json:"line"`
		Function string `json:"function"`
	} `json:"caller"`

	HTTP        *HTTPContext           `json:"http,omitempty"`
	Error       *ErrorContext          `json:"error,omitempty"`
	Fields      map[string]interface{} `json:"fields,omitempty"`
	Performance *PerformanceContext    `json:"performance,omitempty"`
	User        *UserContext           `json:"user,omitempty"`
}

// HTTPContext contains HTTP request/response information
type HTTPContext struct {
	Method       string            `json:"method"`
	Path         string            `json:"path"`
	Query        string            `json:"query"`
	UserAgent    string            `json:"user_agent"`
	RemoteIP     string            `json:"remote_ip"`
	Headers      map[string]string `json:"headers"`
	StatusCode   int               `json:"status_code"`
	ResponseSize int               `json:"response_size"`
	RequestID    string            `json:"request_id"`
	RequestBody  string            `json:"request_body,omitempty"`
	ResponseBody string            `json:"response_body,omitempty"`
}

// ErrorContext contains error information
type ErrorContext struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// PerformanceContext contains timing metrics
type PerformanceContext struct {
	Duration   time.Duration `json:"duration"`
	DurationMs float64       `json:"duration_ms"`
}

// UserContext contains the authenticated user, when there is one
type UserContext struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// LogContext holds additional context for logging
type LogContext struct {
	HTTP        *HTTPContext
	Error       *ErrorContext
	Performance *PerformanceContext
	User        *UserContext
	Fields      map[string]interface{}
}

// Config holds the logger configuration
type Config struct {
	Service       string
	Version       string
	Environment   string
	LogDir        string        // Directory for log files
	FileName      string        // default api.log
	FlushInterval time.Duration // How often to flush logs to file
	BatchSize     int
	BufferSize    int // Channel buffer size
	LogLevel      LogLevel
	EnableCaller  bool
	ExecutionID   string

	// rotação (lumberjack)
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool

	// Stdout espelha as entradas no terminal (fora de produção)
	Stdout bool
	// Output substitui o arquivo rotativo; usado em testes
	Output io.Writer
}

// FileLogger is the main logger instance
type FileLogger struct {
	config      Config
	logChannel  chan LogEntry
	flushReq    chan chan struct{}
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	closeOnce   sync.Once
	hostname    string
	pid         int
	ExecutionID string

	out    *bufio.Writer
	closer io.Closer
}

// NewLogger creates a new FileLogger instance
func NewLogger(config Config) *FileLogger {
	if config.LogDir == "" {
		config.LogDir = "./logs"
	}
	if config.FileName == "" {
		config.FileName = "api.log"
	}
	if config.FlushInterval == 0 {
		config.FlushInterval = 1 * time.Second
	}
	if config.BatchSize == 0 {
		config.BatchSize = 100
	}
	if config.BufferSize == 0 {
		config.BufferSize = 10000
	}
	if config.LogLevel == "" {
		config.LogLevel = LevelInfo
	}
	if config.MaxSizeMB == 0 {
		config.MaxSizeMB = 10
	}
	if config.MaxBackups == 0 {
		config.MaxBackups = 7
	}
	if config.MaxAgeDays == 0 {
		config.MaxAgeDays = 30
	}
	if config.ExecutionID == "" {
		config.ExecutionID = uuid.New().String()[0:5]
	}

	var sink io.Writer
	var closer io.Closer
	if config.Output != nil {
		sink = config.Output
	} else {
		if err := os.MkdirAll(config.LogDir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		}
		rotating := &lumberjack.Logger{
			Filename:   filepath.Join(config.LogDir, config.FileName),
			MaxSize:    config.MaxSizeMB,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAgeDays,
			Compress:   config.Compress,
			LocalTime:  true,
		}
		sink, closer = rotating, rotating
	}
	if config.Stdout {
		sink = io.MultiWriter(sink, os.Stdout)
	}

	hostname, _ := os.Hostname()
	ctx, cancel := context.WithCancel(context.Background())

	l := &FileLogger{
		config:      config,
		logChannel:  make(chan LogEntry, config.BufferSize),
		flushReq:    make(chan chan struct{}),
		ctx:         ctx,
		cancel:      cancel,
		hostname:    hostname,
		pid:         os.Getpid(),
		ExecutionID: config.ExecutionID,
		out:         bufio.NewWriterSize(sink, 64*1024),
		closer:      closer,
	}

	l.wg.Add(1)
	go l.processLogs()

	return l
}

// processLogs handles batching and writing logs
func (l *FileLogger) processLogs() {
	defer l.wg.Done()

	ticker := time.NewTicker(l.config.FlushInterval)
	defer ticker.Stop()

	batch := make([]LogEntry, 0, l.config.BatchSize)

	flush := func() {
		for _, entry := range batch {
			data, err := json.Marshal(entry)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to marshal log entry: %v\n", err)
				continue
			}
			data = append(data, '\n')
			if _, err := l.out.Write(data); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to write log entry: %v\n", err)
			}
		}
		if err := l.out.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to flush log buffer: %v\n", err)
		}
		batch = batch[:0]
	}

	for {
		select {
		case entry := <-l.logChannel:
			batch = append(batch, entry)
			if len(batch) >= l.config.BatchSize {
				flush()
			}

		case done := <-l.flushReq:
			// esvazia o que já está no canal antes de confirmar
			for n := len(l.logChannel); n > 0; n-- {
				batch = append(batch, <-l.logChannel)
			}
			flush()
			close(done)

		case <-ticker.C:
			flush()

		case <-l.ctx.Done():
			for n := len(l.logChannel); n > 0; n-- {
				batch = append(batch, <-l.logChannel)
			}
			flush()
			return
		}
	}
}

func (l *FileLogger) shouldLog(level LogLevel) bool {
	return levelWeight[level] >= levelWeight[l.config.LogLevel]
}

// createLogEntry creates a base log entry with common fields
func (l *FileLogger) createLogEntry(level LogLevel, message string, skip int) LogEntry {
	entry := LogEntry{
		ID:          uuid.New().String(),
		Timestamp:   time.Now().UTC(),
		Level:       level,
		Message:     message,
		Logger:      "file-logger",
		Service:     l.config.Service,
		Version:     l.config.Version,
		Environment: l.config.Environment,
		Hostname:    l.hostname,
		PID:         l.pid,
		ExecID:      l.config.ExecutionID,
	}

	if l.config.EnableCaller {
		if pc, file, line, ok := runtime.Caller(skip); ok {
			entry.Caller.File = file
			entry.Caller.Line = line
			if fn := runtime.FuncForPC(pc); fn != nil {
				entry.Caller.Function = fn.Name()
			}
		}
	}

	return entry
}

func (l *FileLogger) log(entry LogEntry) {
	if l.ctx.Err() != nil {
		return
	}

	select {
	case l.logChannel <- entry:
	default:
		fmt.Fprintf(os.Stderr, "Logger channel full, dropping log: %s\n", entry.Message)
	}
}

func errorContext(err error) *ErrorContext {
	if err == nil {
		return nil
	}
	return &ErrorContext{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
	}
}

func (l *FileLogger) emit(level LogLevel, message string, err error, fields []map[string]interface{}) {
	if !l.shouldLog(level) {
		return
	}
	entry := l.createLogEntry(level, message, 3)
	entry.Error = errorContext(err)
	if len(fields) > 0 {
		entry.Fields = fields[0]
	}
	l.log(entry)
}

// Debug logs a debug message
func (l *FileLogger) Debug(message string, fields ...map[string]interface{}) {
	l.emit(LevelDebug, message, nil, fields)
}

// Info logs an info message
func (l *FileLogger) Info(message string, fields ...map[string]interface{}) {
	l.emit(LevelInfo, message, nil, fields)
}

// Warn logs a warning message
func (l *FileLogger) Warn(message string, fields ...map[string]interface{}) {
	l.emit(LevelWarn, message, nil, fields)
}

// Error logs an error message
func (l *FileLogger) Error(message string, err error, fields ...map[string]interface{}) {
	l.emit(LevelError, message, err, fields)
}

// Fatal logs a fatal message. O processo não é encerrado aqui.
func (l *FileLogger) Fatal(message string, err error, fields ...map[string]interface{}) {
	l.emit(LevelFatal, message, err, fields)
}

// WithContext logs with additional context
func (l *FileLogger) WithContext(level LogLevel, message string, ctx LogContext) {
	if !l.shouldLog(level) {
		return
	}

	entry := l.createLogEntry(level, message, 2)
	entry.HTTP = ctx.HTTP
	entry.Error = ctx.Error
	entry.Performance = ctx.Performance
	entry.User = ctx.User
	entry.Fields = ctx.Fields

	l.log(entry)
}

// Flush blocks until every entry queued so far has been written
func (l *FileLogger) Flush() {
	done := make(chan struct{})
	select {
	case l.flushReq <- done:
		<-done
	case <-l.ctx.Done():
	}
}

// Close gracefully shuts down the logger
func (l *FileLogger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		l.cancel()
		l.wg.Wait()
		if l.closer != nil {
			err = l.closer.Close()
		}
	})
	return err
}
