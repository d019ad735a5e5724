package positions

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"astock/model"
)

// Provider 持仓数据源
type Provider interface {
	// TodayInitPosition 当日开盘前（即上一交易日收盘后）的持仓
	TodayInitPosition(ctx context.Context, date, signature string) (model.PositionSnapshot, error)
}

// ErrInvalidSignature 签名不能作为持仓目录名
var ErrInvalidSignature = errors.New("invalid agent signature")

// ValidateSignature 签名必须是单级目录名，不含路径分隔符与 ..
func ValidateSignature(signature string) error {
	if signature == "" || signature == "." || strings.Contains(signature, "..") ||
		strings.ContainsAny(signature, `/\`) || !filepath.IsLocal(signature) {
		return fmt.Errorf("%w: %q", ErrInvalidSignature, signature)
	}
	return nil
}

// FileProvider 读取 <dir>/<signature>/position/position.jsonl
//
// 每行一条持仓记录：{"date":"2024-05-31","id":3,"positions":{"600519.SH":100,"CASH":5000}}
// 取日期早于当日的最新记录，同一日期取 id 最大者。
type FileProvider struct {
	dir string
	log logrus.FieldLogger
}

func NewFileProvider(dir string, log logrus.FieldLogger) *FileProvider {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &FileProvider{dir: dir, log: log.WithField("component", "positions")}
}

// PositionFile 持仓文件路径
func (p *FileProvider) PositionFile(signature string) string {
	return filepath.Join(p.dir, signature, "position", "position.jsonl")
}

func (p *FileProvider) TodayInitPosition(ctx context.Context, date, signature string) (model.PositionSnapshot, error) {
	if err := ValidateSignature(signature); err != nil {
		return model.PositionSnapshot{}, err
	}
	path := p.PositionFile(signature)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			p.log.WithField("path", path).Warn("持仓文件不存在，按空仓处理")
			return model.NewPositionSnapshot(""), nil
		}
		return model.PositionSnapshot{}, fmt.Errorf("打开持仓文件失败: %w", err)
	}
	defer f.Close()

	var (
		best     gjson.Result
		bestDate string
		bestID   int64
	)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64<<10), 16<<20)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return model.PositionSnapshot{}, err
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || !gjson.Valid(line) {
			continue
		}
		doc := gjson.Parse(line)
		d := doc.Get("date").String()
		if d == "" || d >= date {
			continue
		}
		id := doc.Get("id").Int()
		if !best.Exists() || d > bestDate || (d == bestDate && id > bestID) {
			best, bestDate, bestID = doc, d, id
		}
	}
	if err := sc.Err(); err != nil {
		return model.PositionSnapshot{}, fmt.Errorf("读取持仓文件失败: %w", err)
	}

	snap := model.NewPositionSnapshot(bestDate)
	snap.ID = bestID
	if !best.Exists() {
		p.log.WithFields(logrus.Fields{"date": date, "signature": signature}).Warn("没有早于当日的持仓记录，按空仓处理")
		return snap, nil
	}

	var parseErr error
	best.Get("positions").ForEach(func(k, v gjson.Result) bool {
		q, err := decimal.NewFromString(v.String())
		if err != nil {
			parseErr = fmt.Errorf("持仓数量格式错误 %s=%s: %w", k.String(), v.Raw, err)
			return false
		}
		snap.Set(k.String(), q)
		return true
	})
	if parseErr != nil {
		return model.PositionSnapshot{}, parseErr
	}
	return snap, nil
}
