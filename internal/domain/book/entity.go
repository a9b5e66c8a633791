package book

import (
	"time"

	"github.com/xiebiao/bookstore-api/internal/domain/author"
)

// Book 图书实体
// 设计说明：
// 1. BookID是业务主键（最长10位字符串），由调用方指定
// 2. Info是1:1扩展信息，Edition是1:N的具体版本（ISBN）
// 3. 实体之间只保存外键，关联数据由仓储按需加载到Details
type Book struct {
	BookID string
	Title  string
	AuthID string
}

// Info 图书扩展信息（与Book一对一）
type Info struct {
	BookID       string
	Genre        string
	SeriesID     *string
	VolumeNumber *int
	StaffComment string
}

// Edition 图书版本，ISBN唯一
type Edition struct {
	ISBN            string
	BookID          string
	Format          string
	PubID           string
	PublicationDate *time.Time
	Pages           *int
	PrintRunSizeK   *int
	Price           *float64
}

// Details 图书完整视图：作者、扩展信息、所有版本
type Details struct {
	Book     *Book
	Author   *author.Author
	Info     *Info
	Editions []*Edition
}

// Bestseller 一段时间内的销量排行项
type Bestseller struct {
	Book      *Book
	Author    *author.Author
	TotalSold int64
}

// SalesData 单本书最近days天的销量
type SalesData struct {
	Days      int
	TotalSold int64
}
