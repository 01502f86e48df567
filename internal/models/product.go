// Package models содержит доменные модели каталога.
//
// Товар имеет фиксированные поля схемы и произвольные дополнительные
// поля: записи в файле каталога — плоские JSON-объекты, и сервер
// сохраняет все присланные клиентом ключи, а не только известные.
package models

import (
	"bytes"
	"encoding/json"
	"io"
)

// Product представляет товар каталога.
//
// Известные поля схемы хранятся типизированно, все остальные ключи
// записи попадают в Extra и переживают цикл чтение-запись без потерь.
// В JSON товар всегда плоский объект: Extra не сериализуется как
// вложенный ключ.
type Product struct {
	ID       int    // Уникальный идентификатор, назначается сервером
	Name     string // Название товара
	Price    string // Цена в строковом виде, как в исходных данных
	Category string
	Image    string
	Tag      string
	URL      string

	// Extra — дополнительные поля записи, не входящие в схему.
	Extra map[string]any
}

// knownStringField возвращает указатель на известное строковое поле по ключу.
func (p *Product) knownStringField(key string) *string {
	switch key {
	case "name":
		return &p.Name
	case "price":
		return &p.Price
	case "category":
		return &p.Category
	case "image":
		return &p.Image
	case "tag":
		return &p.Tag
	case "url":
		return &p.URL
	}
	return nil
}

// NewProduct создаёт товар из произвольных полей запроса.
// Ключ "id" игнорируется: идентификатор назначает хранилище.
func NewProduct(fields map[string]any) Product {
	var p Product
	p.ApplyFields(fields)
	return p
}

// ApplyFields накладывает поля на товар. Ключ "id" всегда пропускается,
// все остальные значения вызывающего побеждают прежние.
//
// Непустые строковые значения известных ключей попадают в поля схемы,
// всё остальное — в Extra. Для известного ключа поле схемы и запись в
// Extra никогда не заполнены одновременно: прежнее значение очищается,
// поэтому число поверх строки (и наоборот) заменяет её, а не теряется.
func (p *Product) ApplyFields(fields map[string]any) {
	for key, value := range fields {
		if key == "id" {
			continue
		}
		if field := p.knownStringField(key); field != nil {
			if str, ok := value.(string); ok && str != "" {
				*field = str
				delete(p.Extra, key)
				continue
			}
			*field = ""
		}
		if p.Extra == nil {
			p.Extra = make(map[string]any)
		}
		p.Extra[key] = value
	}
}

// Merge возвращает копию товара с наложенными полями.
// Исходный товар не меняется, id результата закреплён за исходным.
func (p Product) Merge(fields map[string]any) Product {
	merged := p
	if p.Extra != nil {
		merged.Extra = make(map[string]any, len(p.Extra))
		for k, v := range p.Extra {
			merged.Extra[k] = v
		}
	}
	merged.ApplyFields(fields)
	merged.ID = p.ID
	return merged
}

// MarshalJSON сериализует товар плоским объектом: сначала дополнительные
// поля, затем поля схемы. Пустые строковые поля опускаются, id присутствует
// всегда.
func (p Product) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(p.Extra)+7)
	for k, v := range p.Extra {
		flat[k] = v
	}
	for _, kv := range []struct {
		key   string
		value string
	}{
		{"name", p.Name},
		{"price", p.Price},
		{"category", p.Category},
		{"image", p.Image},
		{"tag", p.Tag},
		{"url", p.URL},
	} {
		if kv.value != "" {
			flat[kv.key] = kv.value
		}
	}
	flat["id"] = p.ID
	return json.Marshal(flat)
}

// UnmarshalJSON разбирает плоский JSON-объект товара. Числа декодируются
// как json.Number, чтобы большие значения не теряли точность в Extra.
func (p *Product) UnmarshalJSON(data []byte) error {
	fields, err := decodeFlat(data)
	if err != nil {
		return err
	}

	*p = Product{}
	if raw, ok := fields["id"]; ok {
		if num, ok := raw.(json.Number); ok {
			if id, err := num.Int64(); err == nil {
				p.ID = int(id)
			}
		}
	}
	p.ApplyFields(fields)
	return nil
}

// DecodeFields читает из r один плоский JSON-объект с произвольными полями.
// Используется обработчиками создания и обновления товара.
func DecodeFields(r io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func decodeFlat(data []byte) (map[string]any, error) {
	return DecodeFields(bytes.NewReader(data))
}
