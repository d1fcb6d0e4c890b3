package storage

import "corona-spread-gif/models"

// FrameRecordWriter is the interface any frame manifest backend must satisfy.
type FrameRecordWriter interface {
	Write(records []*models.FrameRecord) error
	Close() error
}

// MultiWriter fans records out to every writer in order.
type MultiWriter []FrameRecordWriter

func (m MultiWriter) Write(records []*models.FrameRecord) error {
	for _, w := range m {
		if err := w.Write(records); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiWriter) Close() error {
	var first error
	for _, w := range m {
		if err := w.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
