package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/user/filmfolio/internal/config"
)

// MaxUploadSize 单文件上限 15GB
const MaxUploadSize = 15 << 30

var (
	ErrFileMissing  = errors.New("没有收到文件")
	ErrFileTooLarge = errors.New("文件过大，最大 15GB")
	ErrFileType     = errors.New("不允许的文件类型，仅支持视频 (mp4, mov, webm) 或图片 (jpg, png, webp)")
)

// MIME 与扩展名双白名单：浏览器上报的 MIME 经常不靠谱，两者命中其一即放行
var (
	allowedVideoTypes = map[string]bool{
		"video/mp4": true, "video/mov": true, "video/quicktime": true, "video/webm": true,
	}
	allowedImageTypes = map[string]bool{
		"image/jpeg": true, "image/png": true, "image/webp": true, "image/jpg": true,
	}
	allowedVideoExts = map[string]bool{
		"mp4": true, "mov": true, "webm": true, "m4v": true,
	}
	allowedImageExts = map[string]bool{
		"jpg": true, "jpeg": true, "png": true, "webp": true,
	}
)

// 上传分类提示（表单里可选的 type 字段）
const (
	HintBanner    = "banner"
	HintThumbnail = "thumbnail"
	HintVideo     = "video"
)

// Classification 上传归类结果
type Classification struct {
	Folder string // 存储目录
	Key    string // 对象键，形如 thumbnails/1700000000000-x9k2.png
}

// Classify 决定上传载荷是否接受以及写入哪个目录
//
// 校验顺序：载荷存在 -> 大小 -> 类型（MIME 或扩展名命中其一）。
// 目录优先按调用方提示映射，没有提示时按 MIME 是否为图片推断。
func Classify(fileName, mimeType string, size int64, hint string) (Classification, error) {
	if fileName == "" && size == 0 {
		return Classification{}, ErrFileMissing
	}
	if size > MaxUploadSize {
		return Classification{}, ErrFileTooLarge
	}

	ext := fileExt(fileName)
	mimeOK := allowedVideoTypes[mimeType] || allowedImageTypes[mimeType]
	extOK := allowedVideoExts[ext] || allowedImageExts[ext]
	if !mimeOK && !extOK {
		return Classification{}, ErrFileType
	}

	var folder string
	switch hint {
	case HintBanner:
		folder = "banners"
	case HintThumbnail:
		folder = "thumbnails"
	case HintVideo:
		folder = "films"
	default:
		if allowedImageTypes[mimeType] {
			folder = "thumbnails"
		} else {
			folder = "films"
		}
	}

	if ext == "" {
		ext = "jpg"
	}
	key := fmt.Sprintf("%s/%d-%s.%s", folder, time.Now().UnixMilli(), randomFragment(), ext)

	return Classification{Folder: folder, Key: key}, nil
}

// fileExt 取小写扩展名（不带点）
func fileExt(fileName string) string {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 || idx == len(fileName)-1 {
		return ""
	}
	return strings.ToLower(fileName[idx+1:])
}

// randomFragment 生成 base36 随机片段用于防碰撞
func randomFragment() string {
	return strconv.FormatUint(rand.Uint64(), 36)
}

// UploadResult 上传结果
type UploadResult struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
	Type     string `json:"type"`
}

// ObjectStore 对象存储客户端需要的最小接口，minio.Client 直接满足
type ObjectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	BucketExists(ctx context.Context, bucketName string) (bool, error)
}

// Uploader 上传服务，单次 PUT 写入对象存储并拼接公开 URL
type Uploader struct {
	store     ObjectStore
	bucket    string
	publicURL string
}

// NewUploader 创建上传服务
func NewUploader(cfg *config.Config) (*Uploader, error) {
	client, err := minio.New(cfg.StorageEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
		Secure: true,
		Region: "auto",
	})
	if err != nil {
		return nil, fmt.Errorf("对象存储客户端初始化失败: %w", err)
	}

	return &Uploader{
		store:     client,
		bucket:    cfg.StorageBucket,
		publicURL: strings.TrimRight(cfg.StoragePublicURL, "/"),
	}, nil
}

// NewUploaderWithStore 用自定义客户端构造（测试用）
func NewUploaderWithStore(store ObjectStore, bucket, publicURL string) *Uploader {
	return &Uploader{store: store, bucket: bucket, publicURL: strings.TrimRight(publicURL, "/")}
}

// Upload 归类并写入对象存储，返回公开访问地址
// 单次原子 PUT，失败不做清理
func (u *Uploader) Upload(ctx context.Context, reader io.Reader, fileName, mimeType string, size int64, hint string) (*UploadResult, error) {
	cls, err := Classify(fileName, mimeType, size, hint)
	if err != nil {
		return nil, err
	}

	_, err = u.store.PutObject(ctx, u.bucket, cls.Key, reader, size, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("文件上传失败: %w", err)
	}

	return &UploadResult{
		URL:      u.publicURL + "/" + cls.Key,
		FileName: cls.Key,
		Size:     size,
		Type:     mimeType,
	}, nil
}

// Ping 健康检查用，校验桶可达
func (u *Uploader) Ping(ctx context.Context) error {
	ok, err := u.store.BucketExists(ctx, u.bucket)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("存储桶 %s 不存在", u.bucket)
	}
	return nil
}
