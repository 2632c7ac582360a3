package task

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// ==================== 接口定义 ====================

// StorageProvider 存储接口
type StorageProvider interface {
	Delete(ctx context.Context, url string) error
}

// ==================== BlobCleanupTask 图片清理任务 ====================

// 同一个 URL 最多重试次数，超过后放弃并记日志
const maxDeleteAttempts = 5

type pendingDelete struct {
	url      string
	attempts int
}

// BlobCleanupTask 定时重试删除失败的存储端文件
// 商品更新时同步删除图片失败只记日志不阻塞请求，失败的 URL 进这里的队列
type BlobCleanupTask struct {
	storage StorageProvider
	cron    *cron.Cron

	mu      sync.Mutex
	pending []pendingDelete
}

// NewBlobCleanupTask 创建图片清理任务
func NewBlobCleanupTask(storage StorageProvider) *BlobCleanupTask {
	return &BlobCleanupTask{
		storage: storage,
		cron:    cron.New(),
	}
}

// Schedule 把删除失败的 URL 加入重试队列
func (t *BlobCleanupTask) Schedule(url string) {
	if url == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	// 去重，同一个 URL 不重复排队
	for _, p := range t.pending {
		if p.url == url {
			return
		}
	}
	t.pending = append(t.pending, pendingDelete{url: url})
}

// PendingCount 当前队列长度
func (t *BlobCleanupTask) PendingCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// Start 启动定时任务
func (t *BlobCleanupTask) Start() {
	// 定时策略：每 5 分钟执行
	_, err := t.cron.AddFunc("*/5 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		t.Execute(ctx)
	})

	if err != nil {
		log.Fatalf("[BlobCleanupTask] 无法启动定时任务: %v", err)
	}

	t.cron.Start()
	log.Println("[BlobCleanupTask] 定时任务已启动（每 5 分钟重试删除）")
}

// Stop 停止定时任务
func (t *BlobCleanupTask) Stop() {
	t.cron.Stop()
	log.Println("[BlobCleanupTask] 定时任务已停止")
}

// Execute 执行一轮重试
func (t *BlobCleanupTask) Execute(ctx context.Context) {
	t.mu.Lock()
	batch := t.pending
	t.pending = nil
	t.mu.Unlock()

	if len(batch) == 0 {
		return
	}
	if t.storage == nil {
		// 存储不可用，整批放回队列等下一轮
		t.mu.Lock()
		t.pending = append(batch, t.pending...)
		t.mu.Unlock()
		return
	}
	log.Printf("[BlobCleanupTask] 开始重试删除, 队列长度: %d", len(batch))

	var requeue []pendingDelete
	for _, p := range batch {
		if err := t.storage.Delete(ctx, p.url); err != nil {
			p.attempts++
			if p.attempts >= maxDeleteAttempts {
				log.Printf("[BlobCleanupTask] 删除重试超过 %d 次，放弃: %s, err: %v", maxDeleteAttempts, p.url, err)
				continue
			}
			log.Printf("[BlobCleanupTask] 删除仍然失败（第 %d 次）: %s, err: %v", p.attempts, p.url, err)
			requeue = append(requeue, p)
			continue
		}
		log.Printf("[BlobCleanupTask] 删除成功: %s", p.url)
	}

	if len(requeue) > 0 {
		t.mu.Lock()
		t.pending = append(requeue, t.pending...)
		t.mu.Unlock()
	}
}
