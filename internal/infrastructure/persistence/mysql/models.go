package mysql

import (
	"time"
)

// GORM数据模型
// 设计说明：
// 1. 这里是infrastructure层的数据模型，带GORM tag；domain层实体不依赖GORM
// 2. 表名、列名沿用既有书店库（PascalCase列名），通过column tag显式映射
// 3. 表结构由migrations/下的goose脚本维护，AutoMigrate只在开发环境使用
// 4. 外键只作为普通列声明，不声明关联字段，关联数据由仓储显式查询

// UserModel 用户表
type UserModel struct {
	ID           uint      `gorm:"column:id;primaryKey"`
	Username     string    `gorm:"column:username;size:64;uniqueIndex;not null"`
	Email        string    `gorm:"column:email;size:120;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;size:256;not null"`
	Role         string    `gorm:"column:role;size:20;default:user"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (UserModel) TableName() string { return "users" }

// AuthorModel 作者表
type AuthorModel struct {
	AuthID             string     `gorm:"column:AuthID;primaryKey;size:10"`
	FirstName          string     `gorm:"column:FirstName;size:50"`
	LastName           string     `gorm:"column:LastName;size:50;index:idx_author_name"`
	Birthday           *time.Time `gorm:"column:Birthday;type:date"`
	CountryOfResidence string     `gorm:"column:CountryOfResidence;size:50"`
	HrsWritingPerDay   *int       `gorm:"column:HrsWritingPerDay"`
}

func (AuthorModel) TableName() string { return "author" }

// BookModel 图书表
type BookModel struct {
	BookID string `gorm:"column:BookID;primaryKey;size:10"`
	Title  string `gorm:"column:Title;size:255;not null;index:idx_book_title"`
	AuthID string `gorm:"column:AuthID;size:10;index"`
}

func (BookModel) TableName() string { return "book" }

// InfoModel 图书扩展信息表（与book一对一）
type InfoModel struct {
	BookID       string  `gorm:"column:BookID;primaryKey;size:10"`
	Genre        string  `gorm:"column:Genre;size:50;index"`
	SeriesID     *string `gorm:"column:SeriesID;size:20;index"`
	VolumeNumber *int    `gorm:"column:VolumeNumber"`
	StaffComment string  `gorm:"column:StaffComment;type:text"`
}

func (InfoModel) TableName() string { return "info" }

// EditionModel 版本表，Formatt是既有库的列名
type EditionModel struct {
	ISBN            string     `gorm:"column:ISBN;primaryKey;size:20"`
	BookID          string     `gorm:"column:BookID;size:10;index"`
	Format          string     `gorm:"column:Formatt;size:50"`
	PubID           string     `gorm:"column:PubID;size:10;index"`
	PublicationDate *time.Time `gorm:"column:PublicationDate;type:date"`
	Pages           *int       `gorm:"column:Pages"`
	PrintRunSizeK   *int       `gorm:"column:PrintRunSizeK"`
	Price           *float64   `gorm:"column:Price;type:decimal(6,2)"`
}

func (EditionModel) TableName() string { return "edition" }

// PublisherModel 出版社表
type PublisherModel struct {
	PubID           string `gorm:"column:PubID;primaryKey;size:10"`
	PublishingHouse string `gorm:"column:PublishingHouse;size:100"`
	City            string `gorm:"column:City;size:50"`
	State           string `gorm:"column:State;size:50"`
	Country         string `gorm:"column:Country;size:50"`
	YearEstablished *int   `gorm:"column:YearEstablished"`
	MarketingSpend  *int   `gorm:"column:MarketingSpend"`
}

func (PublisherModel) TableName() string { return "publisher" }

// SeriesModel 丛书表
type SeriesModel struct {
	SeriesID       string `gorm:"column:SeriesID;primaryKey;size:20"`
	SeriesName     string `gorm:"column:SeriesName;size:100"`
	PlannedVolumes *int   `gorm:"column:PlannedVolumes"`
	BookTourEvents *int   `gorm:"column:BookTourEvents"`
}

func (SeriesModel) TableName() string { return "series" }

// AwardModel 获奖表
type AwardModel struct {
	AwardID   uint   `gorm:"column:AwardID;primaryKey;autoIncrement"`
	BookID    string `gorm:"column:BookID;size:10;index"`
	AwardName string `gorm:"column:AwardName;size:255"`
	YearWon   *int   `gorm:"column:YearWon"`
}

func (AwardModel) TableName() string { return "award" }

// RatingModel 评分表
type RatingModel struct {
	ReviewID   uint   `gorm:"column:ReviewID;primaryKey;autoIncrement"`
	BookID     string `gorm:"column:BookID;size:10;index"`
	Rating     int    `gorm:"column:Rating"`
	ReviewerID *int   `gorm:"column:ReviewerID"`
}

func (RatingModel) TableName() string { return "ratings" }

// CheckoutModel 借阅统计表，BookID+CheckoutMonth联合主键
type CheckoutModel struct {
	BookID            string `gorm:"column:BookID;primaryKey;size:10"`
	CheckoutMonth     int    `gorm:"column:CheckoutMonth;primaryKey"`
	NumberOfCheckouts int    `gorm:"column:NumberOfCheckouts"`
}

func (CheckoutModel) TableName() string { return "checkouts" }

// OrderModel 订单表
type OrderModel struct {
	OrderID  string     `gorm:"column:OrderID;primaryKey;size:30"`
	SaleDate *time.Time `gorm:"column:SaleDate;type:date;index:idx_orders_saledate"`
}

func (OrderModel) TableName() string { return "orders" }

// OrderDetailModel 订单明细表，OrderID+ItemID联合主键
type OrderDetailModel struct {
	OrderID  string `gorm:"column:OrderID;primaryKey;size:30"`
	ItemID   string `gorm:"column:ItemID;primaryKey;size:30"`
	ISBN     string `gorm:"column:ISBN;size:20;index"`
	Quantity int    `gorm:"column:Quantity;not null;default:1"`
}

func (OrderDetailModel) TableName() string { return "orderdetails" }

// allModels AutoMigrate使用的模型列表
func allModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&AuthorModel{},
		&PublisherModel{},
		&SeriesModel{},
		&BookModel{},
		&InfoModel{},
		&EditionModel{},
		&AwardModel{},
		&RatingModel{},
		&CheckoutModel{},
		&OrderModel{},
		&OrderDetailModel{},
	}
}
