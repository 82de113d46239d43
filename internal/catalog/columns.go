package catalog

import (
	"strings"

	"github.com/nguyentantai21042004/caseclip/internal/models"
)

const (
	defaultOpenEndLabel = "视频结尾"
	tagSeparator        = "、"
)

var header = []string{
	"案例编号",
	"日期",
	"案例标题",
	"一级分类",
	"二级分类",
	"标签",
	"起始时间",
	"结束时间",
	"适用人群",
	"适用场景",
	"原始文字稿",
	"清洗后文字稿",
	"视频文件路径",
}

func row(ec models.EnrichedCase, openEndLabel string) []string {
	end := ec.EndTime
	if end == "" {
		end = openEndLabel
	}

	return []string{
		ec.CaseID,
		ec.Date,
		ec.Title,
		ec.PrimaryCategory,
		ec.SecondaryCategory,
		strings.Join(ec.Tags, tagSeparator),
		ec.StartTime,
		end,
		ec.TargetAudience,
		ec.ApplicableScenarios,
		ec.RawText,
		ec.CleanedText,
		ec.ClipPath,
	}
}
