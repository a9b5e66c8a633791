// migrate 数据库迁移工具
//
//	go run ./cmd/migrate up | down | status | version | reset
package main

import (
	"database/sql"
	"log"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/pressly/goose/v3"

	"github.com/xiebiao/bookstore-api/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-api/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	db, err := sql.Open("mysql", cfg.Database.DSN()+"&multiStatements=true")
	if err != nil {
		log.Fatalf("连接数据库失败: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("数据库连接测试失败: %v", err)
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("mysql"); err != nil {
		log.Fatalf("设置方言失败: %v", err)
	}

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	log.Printf("执行迁移: %s", command)
	switch command {
	case "up":
		err = goose.Up(db, ".")
	case "down":
		err = goose.Down(db, ".")
	case "reset":
		err = goose.Reset(db, ".")
	case "status":
		err = goose.Status(db, ".")
	case "version":
		var version int64
		version, err = goose.GetDBVersion(db)
		if err == nil {
			log.Printf("当前版本: %d", version)
		}
	default:
		log.Fatalf("未知命令: %s，可用命令: up, down, reset, status, version", command)
	}
	if err != nil {
		log.Fatalf("迁移失败: %v", err)
	}
	log.Println("完成")
}
