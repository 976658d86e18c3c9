package utils

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	{ // Test PartitionMap
		getHisto := func(K, Np int) (histo map[int]int) {
			pm := NewPartitionMap(Np, K)
			histo = make(map[int]int)
			for np := 0; np < pm.ParallelDegree; np++ {
				maxK := pm.GetBucketDimension(np)
				histo[maxK]++
			}
			return
		}
		getTotal := func(histo map[int]int) (total int) {
			for key, count := range histo {
				total += key * count
			}
			return
		}
		assert.Equal(t, map[int]int{0: 30, 1: 2}, getHisto(2, 32))
		assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
		assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
		assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
		assert.Equal(t, 287, getTotal(getHisto(287, 32)))
		for n := 64; n < 10000; n++ {
			var (
				keys   [2]float64
				keyNum int
			)
			histo := getHisto(n, 32)
			for key := range histo {
				keys[keyNum] = float64(key)
				keyNum++
			}
			if keyNum == 2 {
				assert.Equal(t, 1., math.Abs(keys[0]-keys[1])) // Maximum imbalance of 1
			}
			assert.Equal(t, n, getTotal(histo))
		}
	}
	{ // Inverse lookup finds the bucket holding an index in at most one extra try
		for maxIndex := 10; maxIndex < 1000; maxIndex++ {
			pm := NewPartitionMap(5, maxIndex)
			for k := 0; k < maxIndex; k++ {
				tryCount, bn, min, max := pm.getBucketWithTryCount(k)
				mmin, mmax := pm.GetBucketRange(bn)
				assert.True(t, k >= min && k < max && min == mmin && max == mmax && tryCount <= 1)
			}
		}
		pm := NewPartitionMap(3, 10)
		for _, k := range []int{-1, 10, 11} {
			bn, _, _ := pm.GetBucket(k)
			assert.Equal(t, -1, bn)
		}
		bn, min, max := pm.GetBucket(9)
		assert.Equal(t, [3]int{2, 7, 10}, [3]int{bn, min, max})
	}
}

func TestMailBox(t *testing.T) {
	{ // Tagged messages from one sender are claimed by tag, in posting order
		mb := NewMailBox[[]float64](2, 8)
		mb.PostMessage(0, 1, 7, []float64{1})
		mb.PostMessage(0, 1, 3, []float64{2})
		mb.PostMessage(0, 1, 7, []float64{3})
		assert.Equal(t, []float64{2}, mb.ReceiveMessage(1, 0, 3))
		assert.Equal(t, 1, len(mb.pending[1]))
		assert.Equal(t, []float64{1}, mb.ReceiveMessage(1, 0, 7))
		assert.Equal(t, []float64{3}, mb.ReceiveMessage(1, 0, 7))
		assert.Equal(t, 0, len(mb.pending[1]))
	}
	{ // Self messages, as used by a periodic axis with a single rank
		mb := NewMailBox[int](1, 4)
		mb.PostMessage(0, 0, 1, 10)
		mb.PostMessage(0, 0, 0, 20)
		assert.Equal(t, 20, mb.ReceiveMessage(0, 0, 0))
		assert.Equal(t, 10, mb.ReceiveMessage(0, 0, 1))
	}
	{ // Concurrent ring exchange
		NP := 5
		mb := NewMailBox[int](NP, 4)
		got := make([]int, NP)
		wg := sync.WaitGroup{}
		for np := 0; np < NP; np++ {
			wg.Add(1)
			go func(np int) {
				defer wg.Done()
				mb.PostMessage(np, (np+1)%NP, 0, np)
				got[np] = mb.ReceiveMessage(np, (np+NP-1)%NP, 0)
			}(np)
		}
		wg.Wait()
		for np := 0; np < NP; np++ {
			assert.Equal(t, (np+NP-1)%NP, got[np])
		}
	}
	{ // Smallest partition
		assert.Equal(t, 3, NewPartitionMap(3, 10).MinBucketDimension())
		assert.Equal(t, 4, NewPartitionMap(2, 8).MinBucketDimension())
	}
}
