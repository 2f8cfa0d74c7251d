// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

package api

import (
	"net/http"
	"testing"

	"github.com/filmoteka/filmoteka/internal/models"
)

func TestTagsList(t *testing.T) {
	env := newTestEnv(t)
	env.registry.tags = []models.NamedEntity{{ID: 1, Name: "花容月貌"}, {ID: 2, Name: "马赛克"}}

	rec, envelope := env.doJSON(t, http.MethodGet, "/api/v1/tags/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	data, ok := envelope.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data = %T", envelope.Data)
	}
	tags, _ := data["tags"].([]interface{})
	if len(tags) != 2 {
		t.Errorf("tags = %v", data["tags"])
	}
}

func TestTagCreate(t *testing.T) {
	env := newTestEnv(t)

	rec, envelope := env.doJSON(t, http.MethodPost, "/api/v1/tags/", map[string]string{"name": "新标签"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if envelope.Status != "success" {
		t.Errorf("status = %q", envelope.Status)
	}
	if len(env.registry.tags) != 1 || env.registry.tags[0].Name != "新标签" {
		t.Errorf("registry tags = %v", env.registry.tags)
	}
}

func TestTagCreateConflict(t *testing.T) {
	env := newTestEnv(t)
	env.registry.tags = []models.NamedEntity{{ID: 1, Name: "花容月貌"}}

	rec, envelope := env.doJSON(t, http.MethodPost, "/api/v1/tags/", map[string]string{"name": "花容月貌"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if envelope.Error == nil || envelope.Error.Code != "CONFLICT" {
		t.Errorf("error = %+v", envelope.Error)
	}
}

func TestTagCreateRequiresName(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.doJSON(t, http.MethodPost, "/api/v1/tags/", map[string]string{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestTagRename(t *testing.T) {
	env := newTestEnv(t)
	env.registry.tags = []models.NamedEntity{{ID: 1, Name: "旧名"}}

	rec, _ := env.doJSON(t, http.MethodPut, "/api/v1/tags/1", map[string]string{"name": "新名"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if env.registry.tags[0].Name != "新名" {
		t.Errorf("tag name = %q", env.registry.tags[0].Name)
	}
}

func TestTagRenameUnknownID(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.doJSON(t, http.MethodPut, "/api/v1/tags/42", map[string]string{"name": "新名"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestTagRenameBadID(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.doJSON(t, http.MethodPut, "/api/v1/tags/abc", map[string]string{"name": "新名"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDimensionsLifecycle(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.doJSON(t, http.MethodPost, "/api/v1/dimensions/", map[string]string{"name": "颜值"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}

	rec, _ = env.doJSON(t, http.MethodPut, "/api/v1/dimensions/1", map[string]string{"name": "外貌"})
	if rec.Code != http.StatusOK {
		t.Fatalf("rename status = %d", rec.Code)
	}

	rec, envelope := env.doJSON(t, http.MethodGet, "/api/v1/dimensions/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	data, _ := envelope.Data.(map[string]interface{})
	dims, _ := data["dimensions"].([]interface{})
	if len(dims) != 1 {
		t.Fatalf("dimensions = %v", data["dimensions"])
	}
	first, _ := dims[0].(map[string]interface{})
	if first["name"] != "外貌" {
		t.Errorf("dimension name = %v", first["name"])
	}
}
