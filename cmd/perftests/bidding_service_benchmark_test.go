package perftests

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	bidding "auction-market/internal/bidding"
	"auction-market/internal/lifecycle"
	model "auction-market/internal/models"
	repository "auction-market/internal/repository"
)

func seedAuction(repo *repository.MemoryRepo, id string, price float64) {
	_ = repo.CreateAuction(model.Auction{
		AuctionID: id,
		Title:     "Benchmark auction " + id,
		Price:     price,
		Stock:     1,
		CreatedAt: time.Now().UTC().AddDate(0, -1, 0),
	})
}

// Benchmark 1: PlaceBid - Isolated Auctions (Low Contention - Micro Benchmark)
func Benchmark_PlaceBid_Isolated(b *testing.B) {
	repo := repository.NewMemoryRepo()
	svc := bidding.NewBiddingService(repo, lifecycle.SystemClock{})

	for i := 0; i < b.N; i++ {
		seedAuction(repo, fmt.Sprintf("auction_%d", i), 50)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		bidder := fmt.Sprintf("user_%d", i)
		auctionID := fmt.Sprintf("auction_%d", i)
		price := float64(51 + rand.Intn(100))
		if _, _, err := svc.PlaceBid(auctionID, bidder, price); err != nil {
			b.Fatalf("failed to place bid: %v", err)
		}
	}
}

// Benchmark 2: PlaceBid - Shared Auction (High Contention - Concurrency Benchmark)
func Benchmark_PlaceBid_ConcurrentSharedAuction(b *testing.B) {
	repo := repository.NewMemoryRepo()
	svc := bidding.NewBiddingService(repo, lifecycle.SystemClock{})

	seedAuction(repo, "shared_auction_1", 50)

	b.ReportAllocs()
	b.ResetTimer()

	var lastBid int64 = 50

	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			bidder := fmt.Sprintf("user_parallel_%d", rnd.Int())

			nextBid := atomic.AddInt64(&lastBid, int64(rnd.Intn(5)+1))
			_, _, _ = svc.PlaceBid("shared_auction_1", bidder, float64(nextBid))
		}
	})
}

// Benchmark 3: GetWinningBid - Single - Threaded (Low Contention)
func Benchmark_GetWinningBid_SingleThreaded(b *testing.B) {
	repo := repository.NewMemoryRepo()
	svc := bidding.NewBiddingService(repo, lifecycle.SystemClock{})

	for i := 0; i < b.N; i++ {
		auctionID := fmt.Sprintf("auction_%d", i)
		seedAuction(repo, auctionID, 50)

		for j := 0; j < 10; j++ {
			bidder := fmt.Sprintf("user_%d_%d", i, j)
			price := float64(51 + j*10)
			_, _, _ = svc.PlaceBid(auctionID, bidder, price)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		auctionID := fmt.Sprintf("auction_%d", i)
		if _, err := svc.GetWinningBid(auctionID); err != nil {
			b.Fatalf("failed to get winning bid: %v", err)
		}
	}
}

// Benchmark 4: GetWinningBid - Concurrent (High Contention)
func Benchmark_GetWinningBid_ConcurrentSharedAuction(b *testing.B) {
	repo := repository.NewMemoryRepo()
	svc := bidding.NewBiddingService(repo, lifecycle.SystemClock{})

	seedAuction(repo, "shared_auction_1", 50)

	for j := 0; j < 100; j++ {
		bidder := fmt.Sprintf("user_%d", j)
		price := float64(51 + j)
		_, _, _ = svc.PlaceBid("shared_auction_1", bidder, price)
	}

	b.ReportAllocs()
	b.ResetTimer()

	var counter int64

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := svc.GetWinningBid("shared_auction_1"); err != nil {
				b.Fatalf("failed to get winning bid: %v", err)
			}
			atomic.AddInt64(&counter, 1)
		}
	})
}

// Benchmark 5: Mixed Workload (Readers + Writers concurrently)
func Benchmark_MixedWorkload_SharedAuction(b *testing.B) {
	repo := repository.NewMemoryRepo()
	svc := bidding.NewBiddingService(repo, lifecycle.SystemClock{})

	seedAuction(repo, "shared_auction_1", 50)

	for j := 0; j < 50; j++ {
		bidder := fmt.Sprintf("user_seed_%d", j)
		price := float64(51 + j*2)
		_, _, _ = svc.PlaceBid("shared_auction_1", bidder, price)
	}

	b.ReportAllocs()
	b.ResetTimer()

	var lastBid int64 = 150
	var counter int64

	// Ratio: 70% readers, 30% writers
	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			opType := rnd.Intn(10)
			switch {
			case opType < 3:
				bidder := fmt.Sprintf("user_writer_%d", rnd.Int())
				nextBid := atomic.AddInt64(&lastBid, int64(rnd.Intn(5)+1))
				_, _, _ = svc.PlaceBid("shared_auction_1", bidder, float64(nextBid))
			default:
				_, _ = svc.GetWinningBid("shared_auction_1")
			}
			atomic.AddInt64(&counter, 1)
		}
	})
}
