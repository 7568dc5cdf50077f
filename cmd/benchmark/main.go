package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"lightning-exchange/domain"
	"lightning-exchange/matching"
)

func main() {
	fmt.Println("=== 撮合引擎吞吐量测试 ===")

	// 单线程同步撮合：引擎本身不做任何并发控制，
	// 驱动线程（这里就是 main goroutine）必须是唯一调用 Process 的线程。
	engine := matching.NewEngine("BTCUSDT")

	testDuration := 5 * time.Second
	fmt.Printf("测试时长: %v\n\n", testDuration)

	var orderCount, tradeCount int64
	startTime := time.Now()
	deadline := startTime.Add(testDuration)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

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

		select {
		case <-ticker.C:
			elapsed := time.Since(startTime)
			qps := float64(orderCount) / elapsed.Seconds()
			tps := float64(tradeCount) / elapsed.Seconds()
			fmt.Printf("[%.0fs] 订单: %d (%.0f/s) | 成交: %d (%.0f/s)\n",
				elapsed.Seconds(), orderCount, qps, tradeCount, tps)
		default:
		}
	}

	elapsed := time.Since(startTime)
	qps := float64(orderCount) / elapsed.Seconds()
	tps := float64(tradeCount) / elapsed.Seconds()
	matchRate := float64(tradeCount) / float64(orderCount) * 100

	fmt.Println("\n=== 性能测试结果 ===")
	fmt.Printf("测试时长:     %v\n", elapsed)
	fmt.Printf("总订单数:     %d\n", orderCount)
	fmt.Printf("总成交数:     %d\n", tradeCount)
	fmt.Printf("订单吞吐量:   %.0f orders/sec\n", qps)
	fmt.Printf("成交吞吐量:   %.0f trades/sec\n", tps)
	fmt.Printf("撮合率:       %.2f%%\n", matchRate)

	bestBid, hasBid := engine.Book().BestBid()
	bestAsk, hasAsk := engine.Book().BestAsk()
	fmt.Println("\n=== 订单簿状态 ===")
	if hasBid {
		fmt.Printf("最佳买价:     %s\n", bestBid)
	}
	if hasAsk {
		fmt.Printf("最佳卖价:     %s\n", bestAsk)
	}

	bids, asks := engine.Book().L2Snapshot(5)
	fmt.Println("\n买单深度 (前5档):")
	for i, level := range bids {
		fmt.Printf("  %d. 价格: %s, 数量: %s\n", i+1, level.Price, level.Quantity)
	}
	fmt.Println("\n卖单深度 (前5档):")
	for i, level := range asks {
		fmt.Printf("  %d. 价格: %s, 数量: %s\n", i+1, level.Price, level.Quantity)
	}
}
