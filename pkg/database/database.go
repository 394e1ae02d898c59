package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/moyu-x/dupscan/pkg/logger"
	"github.com/moyu-x/dupscan/pkg/scanner"
)

// ScanRun 一次导出的扫描
type ScanRun struct {
	ID          string    `gorm:"primaryKey"`
	Root        string    `gorm:"not null"`
	Algorithm   string    `gorm:"not null"`
	TotalFiles  int       `gorm:"not null"`
	Hashed      int       `gorm:"not null"`
	Failed      int       `gorm:"not null"`
	Skipped     int       `gorm:"not null"`
	DirErrors   int       `gorm:"not null;default:0"`
	TotalBytes  int64     `gorm:"not null"`
	Groups      int       `gorm:"not null"`
	WastedBytes int64     `gorm:"not null"`
	StartedAt   time.Time `gorm:"index;not null"`
	FinishedAt  time.Time `gorm:"not null"`
}

func (ScanRun) TableName() string {
	return "scan_runs"
}

// DuplicateFile 重复组中的一个成员，Position 为组内遍历顺序
type DuplicateFile struct {
	ID       int64  `gorm:"primaryKey"`
	RunID    string `gorm:"index;not null"`
	Digest   string `gorm:"index;not null"`
	Kind     string
	Category string
	FilePath string `gorm:"not null"`
	FileSize int64  `gorm:"not null"`
	Position int    `gorm:"not null"`
}

func (DuplicateFile) TableName() string {
	return "duplicate_files"
}

// ScanError 扫描中无法访问的文件
type ScanError struct {
	ID       int64  `gorm:"primaryKey"`
	RunID    string `gorm:"index;not null"`
	FilePath string `gorm:"not null"`
	Message  string `gorm:"not null"`
}

func (ScanError) TableName() string {
	return "scan_errors"
}

// Database 扫描结果的导出存储，扫描过程从不读取它
type Database struct {
	db *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	expandedPath, err := expandPath(dbPath)
	if err != nil {
		logger.Get().Error().Err(err).Msg("扩展数据库路径失败")
		return nil, err
	}

	logger.Get().Debug().Msgf("初始化数据库，路径: %s", expandedPath)

	if err := os.MkdirAll(filepath.Dir(expandedPath), 0755); err != nil {
		logger.Get().Error().Err(err).Msgf("创建数据库目录失败: %s", filepath.Dir(expandedPath))
		return nil, err
	}

	dsn := expandedPath + "?_journal_mode=WAL"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.Get().Error().Err(err).Msg("打开数据库连接失败")
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Get().Error().Err(err).Msg("获取数据库连接失败")
		return nil, err
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := createSchema(db); err != nil {
		logger.Get().Error().Err(err).Msg("创建数据库表失败")
		return nil, err
	}

	logger.Get().Debug().Msg("数据库初始化完成")
	return &Database{db: db}, nil
}

func expandPath(path string) (string, error) {
	if len(path) >= 2 && path[0] == '~' && (path[1] == '/' || path[1] == '\\') {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

func createSchema(db *gorm.DB) error {
	return db.AutoMigrate(&ScanRun{}, &DuplicateFile{}, &ScanError{})
}

// SaveScan 在一个事务中写入扫描摘要、所有重复文件和错误
func (d *Database) SaveScan(result *scanner.ScanResult, runID string) error {
	if runID == "" {
		return errors.New("运行 ID 不能为空")
	}

	run := &ScanRun{
		ID:          runID,
		Root:        result.Root,
		Algorithm:   string(result.Algorithm),
		TotalFiles:  result.Stats.TotalFiles,
		Hashed:      result.Stats.Hashed,
		Failed:      result.Stats.Failed,
		Skipped:     result.Stats.Skipped,
		DirErrors:   result.Stats.DirErrors,
		TotalBytes:  result.Stats.TotalBytes,
		Groups:      len(result.Groups),
		WastedBytes: result.WastedBytes(),
		StartedAt:   result.Stats.StartTime,
		FinishedAt:  result.Stats.EndTime,
	}

	var files []DuplicateFile
	for _, group := range result.Groups {
		for i, f := range group.Files {
			files = append(files, DuplicateFile{
				RunID:    runID,
				Digest:   group.Digest,
				Kind:     group.Kind,
				Category: group.Category,
				FilePath: f.Path,
				FileSize: f.Size,
				Position: i,
			})
		}
	}

	var scanErrors []ScanError
	for _, e := range result.Errors {
		scanErrors = append(scanErrors, ScanError{
			RunID:    runID,
			FilePath: e.Path,
			Message:  e.Error(),
		})
	}

	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(run).Error; err != nil {
			return err
		}
		if len(files) > 0 {
			if err := tx.CreateInBatches(files, 500).Error; err != nil {
				return err
			}
		}
		if len(scanErrors) > 0 {
			if err := tx.CreateInBatches(scanErrors, 500).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Get().Error().Err(err).Msgf("导出扫描结果失败: %s", runID)
		return err
	}

	logger.Get().Info().Msgf("扫描结果已导出: %s (%d 个重复文件, %d 个错误)", runID, len(files), len(scanErrors))
	return nil
}

// ListRuns 按开始时间倒序返回最近的扫描记录，limit <= 0 时返回全部
func (d *Database) ListRuns(limit int) ([]ScanRun, error) {
	var runs []ScanRun
	query := d.db.Order("started_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&runs).Error; err != nil {
		logger.Get().Error().Err(err).Msg("查询扫描记录失败")
		return nil, err
	}
	return runs, nil
}

// Run 按 ID 读取一次扫描，不存在时返回的错误包装 gorm.ErrRecordNotFound
func (d *Database) Run(runID string) (*ScanRun, error) {
	var run ScanRun
	if err := d.db.Where("id = ?", runID).First(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("扫描记录不存在: %s: %w", runID, err)
		}
		return nil, err
	}
	return &run, nil
}

// Duplicates 返回某次扫描的重复文件，按摘要和组内顺序排列
func (d *Database) Duplicates(runID string) ([]DuplicateFile, error) {
	var files []DuplicateFile
	err := d.db.Where("run_id = ?", runID).
		Order("digest ASC").
		Order("position ASC").
		Find(&files).Error
	if err != nil {
		logger.Get().Error().Err(err).Msgf("查询重复文件失败: %s", runID)
		return nil, err
	}
	return files, nil
}

// Errors 返回某次扫描记录的错误
func (d *Database) Errors(runID string) ([]ScanError, error) {
	var scanErrors []ScanError
	if err := d.db.Where("run_id = ?", runID).Order("id ASC").Find(&scanErrors).Error; err != nil {
		return nil, err
	}
	return scanErrors, nil
}

func (d *Database) Close() error {
	logger.Get().Debug().Msg("关闭数据库连接")
	sqlDB, err := d.db.DB()
	if err != nil {
		logger.Get().Error().Err(err).Msg("获取数据库连接失败")
		return err
	}
	return sqlDB.Close()
}
