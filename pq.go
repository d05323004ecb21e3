package astar

import (
	"container/heap"
	"iter"
)

type PriorityQueueItem[KeyType comparable, CostType Cost] struct {
	Key          KeyType
	Priority     CostType
	sequence     uint64
	IndexInQueue int
}

type PriorityQueue[KeyType comparable, CostType Cost] []*PriorityQueueItem[KeyType, CostType]

func (queue PriorityQueue[KeyType, CostType]) Len() int { return len(queue) }
func (queue PriorityQueue[KeyType, CostType]) Less(i, j int) bool {
	if queue[i].Priority != queue[j].Priority {
		return queue[i].Priority < queue[j].Priority
	}
	return queue[i].sequence < queue[j].sequence
}
func (queue PriorityQueue[KeyType, CostType]) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].IndexInQueue = i
	queue[j].IndexInQueue = j
}

func (queue *PriorityQueue[KeyType, CostType]) Push(x any) {
	item := x.(*PriorityQueueItem[KeyType, CostType])
	item.IndexInQueue = len(*queue)
	*queue = append(*queue, item)
}

func (queue *PriorityQueue[KeyType, CostType]) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = nil
	item.IndexInQueue = -1
	*queue = oldQueue[:n-1]
	return item
}

// Frontier is the open set: node keys ordered by estimated total cost.
// Keys with equal priority pop in insertion order.
type Frontier[KeyType comparable, CostType Cost] struct {
	queue    PriorityQueue[KeyType, CostType]
	items    map[KeyType]*PriorityQueueItem[KeyType, CostType]
	sequence uint64
}

// NewFrontier returns an empty frontier with room for sizeHint keys.
func NewFrontier[KeyType comparable, CostType Cost](sizeHint int) *Frontier[KeyType, CostType] {
	return &Frontier[KeyType, CostType]{
		queue: make(PriorityQueue[KeyType, CostType], 0, sizeHint),
		items: make(map[KeyType]*PriorityQueueItem[KeyType, CostType], sizeHint),
	}
}

// Push inserts an open key. Pushing a key that is already open lowers its
// priority if the new one is better and is otherwise ignored.
func (frontier *Frontier[KeyType, CostType]) Push(key KeyType, priority CostType) {
	if _, open := frontier.items[key]; open {
		frontier.Decrease(key, priority)
		return
	}
	frontier.sequence++
	item := &PriorityQueueItem[KeyType, CostType]{Key: key, Priority: priority, sequence: frontier.sequence}
	heap.Push(&frontier.queue, item)
	frontier.items[key] = item
}

// Decrease lowers the priority of an open key. It reports false when the key
// is not open or priority is not strictly better.
func (frontier *Frontier[KeyType, CostType]) Decrease(key KeyType, priority CostType) bool {
	item, open := frontier.items[key]
	if !open || priority >= item.Priority {
		return false
	}
	item.Priority = priority
	heap.Fix(&frontier.queue, item.IndexInQueue)
	return true
}

// PopMin removes the key with the lowest priority.
func (frontier *Frontier[KeyType, CostType]) PopMin() (KeyType, CostType, bool) {
	if frontier.queue.Len() == 0 {
		var key KeyType
		var priority CostType
		return key, priority, false
	}
	item := heap.Pop(&frontier.queue).(*PriorityQueueItem[KeyType, CostType])
	delete(frontier.items, item.Key)
	return item.Key, item.Priority, true
}

func (frontier *Frontier[KeyType, CostType]) Len() int { return frontier.queue.Len() }

func (frontier *Frontier[KeyType, CostType]) Contains(key KeyType) bool {
	_, open := frontier.items[key]
	return open
}

// Priority returns the current priority of an open key.
func (frontier *Frontier[KeyType, CostType]) Priority(key KeyType) (CostType, bool) {
	item, open := frontier.items[key]
	if !open {
		var priority CostType
		return priority, false
	}
	return item.Priority, true
}

// Keys yields the open keys in heap order.
func (frontier *Frontier[KeyType, CostType]) Keys() iter.Seq[KeyType] {
	return func(yield func(KeyType) bool) {
		for _, item := range frontier.queue {
			if !yield(item.Key) {
				return
			}
		}
	}
}
