package utils

import "fmt"

// Envelope carries one message between two ranks of a process grid. Tag lets
// the receiver tell apart several messages from the same sender.
type Envelope[T any] struct {
	From, Tag int
	Msg       T
}

type MailBox[T any] struct {
	NP           int
	MessageChans []chan Envelope[T] // One for each rank
	pending      [][]Envelope[T]    // Arrived but not yet claimed, touched only by the owning rank
}

// NewMailBox allocates one inbound channel per rank. depth is the number of
// envelopes a rank may have in flight before a sender blocks.
func NewMailBox[T any](NP, depth int) *MailBox[T] {
	mb := &MailBox[T]{
		NP:           NP,
		MessageChans: make([]chan Envelope[T], NP),
		pending:      make([][]Envelope[T], NP),
	}
	for n := 0; n < NP; n++ {
		mb.MessageChans[n] = make(chan Envelope[T], depth)
	}
	return mb
}

func (mb *MailBox[T]) PostMessage(myRank, targetRank, tag int, msg T) {
	if targetRank < 0 || targetRank > mb.NP-1 {
		panic(fmt.Sprintf("Target rank %d out of bounds", targetRank))
	}
	mb.MessageChans[targetRank] <- Envelope[T]{From: myRank, Tag: tag, Msg: msg}
}

// ReceiveMessage blocks until a message from fromRank with the given tag
// arrives for myRank. Messages from one sender are claimed in the order they
// were posted; others are parked until asked for.
func (mb *MailBox[T]) ReceiveMessage(myRank, fromRank, tag int) (msg T) {
	var (
		q = mb.pending[myRank]
	)
	for i, env := range q {
		if env.From == fromRank && env.Tag == tag {
			mb.pending[myRank] = append(q[:i], q[i+1:]...)
			return env.Msg
		}
	}
	for env := range mb.MessageChans[myRank] {
		if env.From == fromRank && env.Tag == tag {
			return env.Msg
		}
		mb.pending[myRank] = append(mb.pending[myRank], env)
	}
	panic("mailbox closed while waiting for a message")
}

type PartitionMap struct {
	MaxIndex       int // MaxIndex is partitioned into ParallelDegree partitions
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		pm.Partitions[n] = pm.Split1D(n)
	}
	return
}

// GetBucket finds the partition holding index kDim and its [min, max) range.
// An index outside 0..MaxIndex-1 returns bucket -1.
func (pm *PartitionMap) GetBucket(kDim int) (bucketNum, min, max int) {
	_, bucketNum, min, max = pm.getBucketWithTryCount(kDim)
	return
}

func (pm *PartitionMap) getBucketWithTryCount(kDim int) (tryCount, bucketNum, min, max int) {
	if kDim < 0 || kDim >= pm.MaxIndex {
		return 0, -1, 0, 0
	}
	// Initial guess from the even split, off by at most one bucket
	bucketNum = pm.ParallelDegree * kDim / pm.MaxIndex
	for !(pm.Partitions[bucketNum][0] <= kDim && pm.Partitions[bucketNum][1] > kDim) {
		if pm.Partitions[bucketNum][0] > kDim {
			bucketNum--
		} else {
			bucketNum++
		}
		if bucketNum == -1 || bucketNum == pm.ParallelDegree {
			return 0, -1, 0, 0
		}
		tryCount++
	}
	min, max = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) GetBucketDimension(bn int) (kMax int) {
	if bn == -1 {
		kMax = pm.MaxIndex
		return
	}
	var (
		k1, k2 = pm.GetBucketRange(bn)
	)
	kMax = k2 - k1
	return
}

// MinBucketDimension is the size of the smallest partition
func (pm *PartitionMap) MinBucketDimension() (kMin int) {
	kMin = pm.MaxIndex
	for bn := 0; bn < pm.ParallelDegree; bn++ {
		if d := pm.GetBucketDimension(bn); d < kMin {
			kMin = d
		}
	}
	return
}

func (pm *PartitionMap) Split1D(threadNum int) (bucket [2]int) {
	// This routine splits one dimension into c.ParallelDegree pieces, with a maximum imbalance of one item
	var (
		Npart            = pm.MaxIndex / (pm.ParallelDegree)
		startAdd, endAdd int
		remainder        int
	)
	remainder = pm.MaxIndex % pm.ParallelDegree
	if remainder != 0 { // spread the remainder over the first chunks evenly
		if threadNum+1 > remainder {
			startAdd = remainder
			endAdd = 0
		} else {
			startAdd = threadNum
			endAdd = 1
		}
	}
	bucket[0] = threadNum*Npart + startAdd
	bucket[1] = bucket[0] + Npart + endAdd
	return
}
