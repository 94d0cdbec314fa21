// Package config 提供 run 级配置加载与配置驱动的 Node 注册表。
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/cfrec/rank"
)

// RunConfig 是一次推荐生成 run 的外部配置（YAML/JSON）。
type RunConfig struct {
	// TopArtistLimit / SimilarArtistLimit 每用户各源推荐上限
	TopArtistLimit     int `yaml:"top_artist_limit" json:"top_artist_limit"`
	SimilarArtistLimit int `yaml:"similar_artist_limit" json:"similar_artist_limit"`

	// Users 请求的外部用户 ID；为空表示全部用户
	Users []int64 `yaml:"users" json:"users"`

	// CandidateFilter 可选的候选行 CEL 过滤表达式
	CandidateFilter string `yaml:"candidate_filter" json:"candidate_filter"`

	// Workers 各并行阶段的并行度
	Workers int `yaml:"workers" json:"workers"`

	// RatingBounds 分数合法区间，用于产出后的越界诊断
	RatingBounds struct {
		Lower float64 `yaml:"lower" json:"lower"`
		Upper float64 `yaml:"upper" json:"upper"`
	} `yaml:"rating_bounds" json:"rating_bounds"`

	// Redis 生产环境 Store 连接参数
	Redis struct {
		Addr string `yaml:"addr" json:"addr"`
		DB   int    `yaml:"db" json:"db"`
	} `yaml:"redis" json:"redis"`

	// Keys 候选集在 Store 中的 key
	Keys struct {
		TopArtist     string `yaml:"top_artist" json:"top_artist"`
		SimilarArtist string `yaml:"similar_artist" json:"similar_artist"`
	} `yaml:"keys" json:"keys"`
}

// DefaultRunConfig 返回带默认值的 RunConfig。
func DefaultRunConfig() *RunConfig {
	cfg := &RunConfig{
		TopArtistLimit:     200,
		SimilarArtistLimit: 200,
	}
	cfg.RatingBounds.Lower = rank.ScaleLowerBound
	cfg.RatingBounds.Upper = rank.ScaleUpperBound
	cfg.Keys.TopArtist = "candidate:top_artist"
	cfg.Keys.SimilarArtist = "candidate:similar_artist"
	return cfg
}

// LoadRunConfig 从 YAML 文件加载 RunConfig，未出现的字段保留默认值。
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg := DefaultRunConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}
