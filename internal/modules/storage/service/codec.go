package service

import (
	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"bittrader/internal/models"
)

// сигнал хранится целиком как jsonb, отдельные колонки только для индексов

func encodeSignal(s models.Signal) ([]byte, error) {
	b, err := sonic.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "encode signal")
	}
	return b, nil
}

func decodeSignal(b []byte) (models.Signal, error) {
	var s models.Signal
	if err := sonic.Unmarshal(b, &s); err != nil {
		return models.Signal{}, errors.Wrap(err, "decode signal")
	}
	return s, nil
}
