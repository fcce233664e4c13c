// Package editor implements the in-memory link collection with pending
// change tracking and the save routine that reconciles it against a
// remote gateway. All collection mutations are pure in-memory
// transforms; the network is only touched by Saver.
// editor 包实现带待保存标记的链接集合与远端对账保存流程
package editor

// Record 集合中的一条链接，携带未保存的变更标记
// New 与 Modified 互斥：新记录的编辑直接并入创建
type Record struct {
	// ID 持久化后由远端分配，本地与远端的唯一关联键
	ID       string
	Platform Platform
	Title    string
	URL      string
	// Position 数组顺序即位置，重排后重新压缩为 0..n-1
	Position int

	New       bool
	Modified  bool
	Deleted   bool
	Reordered bool
}

// IsPersisted 判断记录是否已持久化
func (r *Record) IsPersisted() bool {
	return r.ID != "" && !r.New
}

// Collection 会话内权威的有序链接集合
// 只在单一调用方流程中变更，不做内部加锁
type Collection struct {
	records []*Record
	// reordered 本会话内发生过重排
	reordered bool
}

func NewCollection() *Collection {
	return &Collection{}
}

// Load 整体替换集合内容，输入须已按位置升序排序
// 调用方负责请求按 Position 排序的数据，Load 不再排序
func (c *Collection) Load(records []Record) {
	c.records = make([]*Record, 0, len(records))
	for i := range records {
		r := records[i]
		c.records = append(c.records, &r)
	}
	c.reordered = false
}

// LoadPending 装入一个携带待保存标记的集合快照，并恢复会话级重排标记
// 供服务端对账入口回放客户端的待保存状态
func (c *Collection) LoadPending(records []Record, sessionReordered bool) {
	c.Load(records)
	c.reordered = sessionReordered
}

// Add 追加一条新记录：默认平台、空 URL、位置为当前最大值加一
// 新记录始终立即可见并排在最后
func (c *Collection) Add() *Record {
	maxPos := -1
	for _, r := range c.records {
		if r.Position > maxPos {
			maxPos = r.Position
		}
	}
	rec := &Record{
		Platform: DefaultPlatform,
		Title:    DefaultPlatform.Label(),
		URL:      "",
		Position: maxPos + 1,
		New:      true,
	}
	c.records = append(c.records, rec)
	return rec
}

// Remove 按可见投影的下标移除记录
// 新记录直接剔除（从未到达远端，无需远端删除）；已持久化记录标记删除，
// 保留在集合里等待下一次保存
func (c *Collection) Remove(visibleIndex int) {
	idx, ok := c.underlyingIndex(visibleIndex)
	if !ok {
		return
	}
	rec := c.records[idx]
	if rec.New {
		c.records = append(c.records[:idx], c.records[idx+1:]...)
		return
	}
	rec.Deleted = true
}

// Edit 按可见投影的下标修改平台与 URL
// 已持久化的记录标记 Modified；新记录的编辑并入创建，不额外标记
func (c *Collection) Edit(visibleIndex int, platform Platform, url string) {
	idx, ok := c.underlyingIndex(visibleIndex)
	if !ok {
		return
	}
	rec := c.records[idx]
	rec.Platform = platform
	rec.Title = platform.Label()
	rec.URL = url
	if !rec.New {
		rec.Modified = true
	}
}

// Move 将可见投影中 from 位置的记录移动到 to 位置（列表 splice 语义），
// 然后把所有未删除记录的位置重新压缩为 0..n-1。
// 已持久化的未删除记录全部打上 Reordered 标记，提示保存流程需要一次
// 批量位置更新。
func (c *Collection) Move(from, to int) {
	visible := c.Visible()
	if from < 0 || from >= len(visible) || from == to {
		return
	}

	rec := visible[from]
	visible = append(visible[:from], visible[from+1:]...)
	if to < 0 {
		to = 0
	}
	if to > len(visible) {
		to = len(visible)
	}
	visible = append(visible[:to], append([]*Record{rec}, visible[to:]...)...)

	// 已删除记录排到数组末尾，位置字段保持原值，保存时整批剔除
	rebuilt := make([]*Record, 0, len(c.records))
	rebuilt = append(rebuilt, visible...)
	for _, r := range c.records {
		if r.Deleted {
			rebuilt = append(rebuilt, r)
		}
	}
	c.records = rebuilt

	c.reindex()
	c.reordered = true
}

// reindex 未删除记录按当前数组顺序重新编号，已删除记录保持原位置
func (c *Collection) reindex() {
	pos := 0
	for _, r := range c.records {
		if r.Deleted {
			continue
		}
		r.Position = pos
		pos++
		if r.IsPersisted() {
			r.Reordered = true
		}
	}
}

// Visible 返回未删除记录的有序投影，只读，不复制记录本身
func (c *Collection) Visible() []*Record {
	out := make([]*Record, 0, len(c.records))
	for _, r := range c.records {
		if !r.Deleted {
			out = append(out, r)
		}
	}
	return out
}

// Records 返回包含已删除记录的完整集合，供保存流程分区使用
func (c *Collection) Records() []*Record {
	return c.records
}

// Len 集合内全部记录数，含已删除
func (c *Collection) Len() int {
	return len(c.records)
}

// HasPendingChanges 任一记录带有未保存标记，或本会话发生过重排
func (c *Collection) HasPendingChanges() bool {
	if c.reordered {
		return true
	}
	for _, r := range c.records {
		if r.New || r.Modified || r.Deleted || r.Reordered {
			return true
		}
	}
	return false
}

// underlyingIndex 将可见投影下标映射为底层数组下标
func (c *Collection) underlyingIndex(visibleIndex int) (int, bool) {
	if visibleIndex < 0 {
		return 0, false
	}
	seen := 0
	for i, r := range c.records {
		if r.Deleted {
			continue
		}
		if seen == visibleIndex {
			return i, true
		}
		seen++
	}
	return 0, false
}
