// Package export 把双人共享时间线渲染成可下载的文件。
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mirekli/commgraph/store"
	"github.com/mirekli/commgraph/store/types"
)

// exportPageLimit 是导出一次取回的最大消息数。
const exportPageLimit = 10000

var timelineHeader = []string{"Message ID", "Sender", "Content", "Occurred At", "Conversation"}

// Service 提供时间线导出。
type Service struct {
	Store store.Store
}

// NewService 创建导出服务。
func NewService(s store.Store) *Service {
	return &Service{Store: s}
}

// TimelineCSV 导出共享时间线为 CSV。
func (s *Service) TimelineCSV(ctx context.Context, q types.CommunicationQuery) ([]byte, error) {
	data, err := s.fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(timelineHeader); err != nil {
		return nil, err
	}
	for _, row := range data {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TimelineXLSX 导出共享时间线为 XLSX。
func (s *Service) TimelineXLSX(ctx context.Context, q types.CommunicationQuery) ([]byte, error) {
	data, err := s.fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Timeline"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	for col, title := range timelineHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for i, row := range data {
		for col, val := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fetch 逐页取回完整时间线并展平成行。页大小固定为 exportPageLimit，
// 不满一页即为最后一页。
func (s *Service) fetch(ctx context.Context, q types.CommunicationQuery) ([][]string, error) {
	q.Limit = exportPageLimit

	var rows [][]string
	for offset := 0; ; offset += exportPageLimit {
		q.Offset = offset

		data, err := s.Store.GetCommunicationData(ctx, q)
		if err != nil {
			return nil, err
		}

		for _, m := range data.Messages {
			title := m.ConversationTitle
			if title == "" {
				title = m.ConversationID
			}
			rows = append(rows, []string{m.MessageID, m.SenderID, m.Content, m.OccurredAt, title})
		}

		if len(data.Messages) < exportPageLimit {
			return rows, nil
		}
	}
}

// Filename 生成下载文件名。
func Filename(user1, user2, ext string) string {
	return fmt.Sprintf("communication_%s_%s.%s", user1, user2, ext)
}
