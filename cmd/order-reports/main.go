package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/m-wu/order-reports/internal/config"
	"github.com/m-wu/order-reports/internal/pipeline"
	"github.com/m-wu/order-reports/internal/refdata"
	"github.com/m-wu/order-reports/internal/server"
	"github.com/m-wu/order-reports/internal/store"
)

var (
	file    = flag.String("file", "", "订单导出 csv 路径")
	weekday = flag.String("weekday", "", "排班生效的星期 (Monday..Sunday，默认今天)")
	outDir  = flag.String("out", "", "输出根目录 (覆盖配置文件)")
	serve   = flag.Bool("serve", false, "以服务模式运行")
	port    = flag.Int("port", 0, "服务端口 (覆盖配置文件)")
	devMode = flag.Bool("dev", false, "开发模式")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Order Reports - 分店订单报表工具")
	fmt.Println("==========================================")

	// .env 仅本地调试用，不存在时静默跳过
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
	}

	// 命令行参数覆盖配置
	if *outDir != "" {
		cfg.Data.OutputDir = *outDir
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}

	var st *store.Store
	if cfg.Data.Archive {
		st, err = store.New(config.ArchivePath(cfg))
		if err != nil {
			log.Fatalf("初始化归档数据库失败: %v", err)
		}
		defer st.Close()
	}

	if *serve {
		runServer(cfg, st)
		return
	}

	if *file == "" {
		flag.Usage()
		log.Fatal("缺少 -file 参数")
	}

	day := *weekday
	if day == "" {
		day = time.Now().Weekday().String()
	} else if !validWeekday(day) {
		log.Fatalf("无效的星期: %s", day)
	}

	p := pipeline.New(cfg, st)
	summary, err := p.Run(pipeline.RunOptions{
		FilePath: *file,
		Weekday:  day,
	})
	if err != nil {
		log.Fatalf("处理失败: %v", err)
	}

	log.Printf("完成: %d 个订单, %d 条商品行, 用时 %s",
		summary.OrderCount, summary.RowCount, summary.Duration.Round(time.Millisecond))
	for _, warning := range summary.Warnings {
		log.Printf("警告: %s", warning)
	}
}

// runServer 服务模式：通过 HTTP 接口上传导出并跑批
func runServer(cfg *config.AppConfig, st *store.Store) {
	srv := server.NewServer(cfg, st)
	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	go func() {
		fmt.Printf("服务启动中，监听端口 %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	fmt.Println("\n按 Ctrl+C 停止服务...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在关闭服务...")
}

func validWeekday(day string) bool {
	for _, d := range refdata.Weekdays {
		if d == day {
			return true
		}
	}
	return false
}
