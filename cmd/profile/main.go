package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/shopspring/decimal"

	"lightning-exchange/domain"
	"lightning-exchange/matching"
)

func main() {
	cpuFile, err := os.Create("cpu.prof")
	if err != nil {
		panic(err)
	}
	defer cpuFile.Close()

	pprof.StartCPUProfile(cpuFile)
	defer pprof.StopCPUProfile()

	fmt.Println("=== 性能分析开始 ===")
	fmt.Println("生成 CPU profile: cpu.prof")

	// 单线程同步撮合：profile 只需驱动 Process 本身的热点，
	// 不再需要多生产者 goroutine 和异步成交消费者。
	engine := matching.NewEngine("BTCUSDT")

	duration := 10 * time.Second
	fmt.Printf("测试时长: %v\n\n", duration)

	var orderCount, tradeCount int64
	startTime := time.Now()
	deadline := startTime.Add(duration)

	orderID := 0
	for time.Now().Before(deadline) {
		side := domain.SideBuy
		if orderID%2 != 0 {
			side = domain.SideSell
		}
		price := decimal.NewFromInt(50000 + int64(orderID%200))

		order := domain.NewOrder(
			fmt.Sprintf("order-%d", orderID),
			"BTCUSDT",
			fmt.Sprintf("user-%d", orderID%8),
			side,
			domain.OrderTypeLimit,
			price,
			decimal.NewFromInt(1),
			engine.NextSequence(),
		)

		trades, err := engine.Process(order)
		if err != nil {
			continue
		}
		orderCount++
		tradeCount += int64(len(trades))
		orderID++
	}

	elapsed := time.Since(startTime)
	fmt.Println("\n=== 性能测试结果 ===")
	fmt.Printf("总订单数: %d\n", orderCount)
	fmt.Printf("总成交数: %d\n", tradeCount)
	fmt.Printf("Order QPS: %.0f orders/sec\n", float64(orderCount)/elapsed.Seconds())
	fmt.Printf("Trade TPS: %.0f trades/sec\n", float64(tradeCount)/elapsed.Seconds())

	fmt.Println("\n分析 CPU profile:")
	fmt.Println("  go tool pprof -http=:8080 cpu.prof")
	fmt.Println("  或者: go tool pprof cpu.prof")
	fmt.Println("  然后输入: top10  (查看前 10 个热点函数)")
	fmt.Println("  然后输入: list <函数名>  (查看具体代码)")
}
