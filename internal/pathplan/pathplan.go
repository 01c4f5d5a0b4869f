package pathplan

import (
	"fmt"
	"path/filepath"
	"time"
)

// 年度目录前缀，如 DOCS2023
const yearPrefix = "DOCS"

// 固定的英文月份缩写表，保证目录名不受运行环境locale影响
var monthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Destination 根据创建时间计算出的目标目录
type Destination struct {
	YearFolder  string
	MonthFolder string
	YearDir     string
	Dir         string
}

// Plan 计算文档的目标目录，使用记录自身的日历年月
func Plan(rootDir string, createdOn time.Time) Destination {
	year := fmt.Sprintf("%s%04d", yearPrefix, createdOn.Year())
	month := monthNames[createdOn.Month()-1]
	yearDir := filepath.Join(rootDir, year)
	return Destination{
		YearFolder:  year,
		MonthFolder: month,
		YearDir:     yearDir,
		Dir:         filepath.Join(yearDir, month),
	}
}
