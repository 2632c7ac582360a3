package service

import (
	"context"
	"testing"

	"catalog_api_v1/internal/model"
	"catalog_api_v1/internal/repository"
)

func TestCategoryService_CreateAndList(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := NewCategoryService(repository.NewCategoryRepository(db))
	ctx := context.Background()

	category, err := svc.Create(ctx, "Ruang Tamu", true)
	if err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}
	if category.Slug != "ruang-tamu" {
		t.Fatalf("slug 派生错误: %s", category.Slug)
	}

	if _, err := svc.Create(ctx, "Ruang  Tamu!", true); err != ErrDuplicateSlug {
		t.Fatalf("期望 ErrDuplicateSlug, 实际: %v", err)
	}
	if _, err := svc.Create(ctx, "", true); err != ErrNameRequired {
		t.Fatalf("期望 ErrNameRequired, 实际: %v", err)
	}

	// 停用分类前台不可见
	if _, err := svc.Create(ctx, "Arsip", false); err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}

	// 分类下挂一个在售商品、一个下架商品
	for _, p := range []*model.Product{
		{Name: "Sofa", Slug: "sofa", CategoryID: &category.ID, IsActive: true},
		{Name: "Sofa Lama", Slug: "sofa-lama", CategoryID: &category.ID, IsActive: false},
	} {
		p.SetImages(nil)
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("预置商品失败: %v", err)
		}
	}

	list, err := svc.ListActive(ctx)
	if err != nil {
		t.Fatalf("查询分类失败: %v", err)
	}
	if len(list) != 1 || list[0].Slug != "ruang-tamu" {
		t.Fatalf("前台应只见启用分类: %+v", list)
	}
	// 商品数只统计在售
	if list[0].ProductCount != 1 {
		t.Fatalf("在售商品数错误: %d", list[0].ProductCount)
	}
}

func TestCategoryService_Update_Rename(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := NewCategoryService(repository.NewCategoryRepository(db))
	ctx := context.Background()

	category, err := svc.Create(ctx, "Dapur", true)
	if err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}

	name := "Dapur & Makan"
	updated, err := svc.Update(ctx, category.ID, &name, nil)
	if err != nil {
		t.Fatalf("更新分类失败: %v", err)
	}
	// 改名时 slug 重新派生
	if updated.Slug != "dapur-makan" {
		t.Fatalf("slug 应重新派生: %s", updated.Slug)
	}

	if _, err := svc.Update(ctx, 999, &name, nil); err != ErrNotFound {
		t.Fatalf("期望 ErrNotFound, 实际: %v", err)
	}
}
