package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/coffee-bar/internal/catalog"
	"github.com/coffee-bar/internal/constants"
	"github.com/coffee-bar/internal/logger"
	"github.com/coffee-bar/internal/models"
	"github.com/coffee-bar/internal/repository"
)

// MenuService 菜单服务，启动时加载一次，之后只读
type MenuService struct {
	menu *catalog.Catalog
}

// NewMenuService 包装已加载的目录
func NewMenuService(menu *catalog.Catalog) *MenuService {
	return &MenuService{menu: menu}
}

// Catalog 返回只读目录
func (s *MenuService) Catalog() *catalog.Catalog {
	return s.menu
}

// LoadCatalog 按来源加载菜单：config 使用配置条目，database 读取 menu_entries
func LoadCatalog(ctx context.Context, source string, configured []catalog.MenuEntry, repo repository.MenuRepository) (*catalog.Catalog, error) {
	switch strings.ToLower(strings.TrimSpace(source)) {
	case "", constants.CatalogSourceConfig:
		if len(configured) == 0 {
			configured = catalog.DefaultEntries()
		}
		menu, err := catalog.New(configured)
		if err != nil {
			return nil, fmt.Errorf("load configured menu: %w", err)
		}
		logger.Infow("catalog_loaded", "source", constants.CatalogSourceConfig, "entries", menu.Len())
		return menu, nil
	case constants.CatalogSourceDatabase:
		if repo == nil {
			return nil, fmt.Errorf("catalog source database requires a menu repository")
		}
		rows, err := repo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list menu entries: %w", err)
		}
		if len(rows) == 0 {
			return nil, ErrCatalogEmpty
		}
		entries := make([]catalog.MenuEntry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, catalog.MenuEntry{
				Name:       row.Name,
				UnitPrice:  row.UnitPrice,
				TotalStock: row.TotalStock,
			})
		}
		menu, err := catalog.New(entries)
		if err != nil {
			return nil, fmt.Errorf("load database menu: %w", err)
		}
		logger.Infow("catalog_loaded", "source", constants.CatalogSourceDatabase, "entries", menu.Len())
		return menu, nil
	default:
		return nil, fmt.Errorf("unsupported catalog source: %s", source)
	}
}

// SeedMenu 将条目按顺序写入 menu_entries，按名称幂等
func SeedMenu(ctx context.Context, repo repository.MenuRepository, entries []catalog.MenuEntry) (created int, err error) {
	if _, err := catalog.New(entries); err != nil {
		return 0, err
	}
	for i, entry := range entries {
		row := &models.MenuEntry{
			Name:       strings.TrimSpace(entry.Name),
			UnitPrice:  entry.UnitPrice,
			TotalStock: entry.TotalStock,
			SortOrder:  i,
		}
		isNew, err := repo.Upsert(ctx, row)
		if err != nil {
			return created, fmt.Errorf("seed %s: %w", row.Name, err)
		}
		if isNew {
			created++
		}
	}
	return created, nil
}
