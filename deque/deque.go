/**
 *
 * 利用数组实现的有界双端队列
 * 服务端用它保存最近推送的帧：新帧从头部加入，满时从尾部淘汰最旧的帧
 *
 */

package deque

type Deque[T any] interface {
	// 队列的长度
	Size() int

	// 容量
	Cap() int

	// 获取队列中对应下标的元素，0 为头部
	Get(i int) T

	// 正向遍历，从头部到尾部
	Traverse(f func(i int, item T))

	// 在队列结尾增加一个元素
	AddLast(item T)

	// 在队列结尾删除一个元素
	RemoveLast() T

	// 在队列头部增加一个元素
	AddFirst(item T)

	// 在队列头部删除一个元素
	RemoveFirst() T

	IsFull() bool

	IsEmpty() bool
}
