package k8s

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	dynfake "k8s.io/client-go/dynamic/fake"
)

var (
	configMapGVR = schema.GroupVersionResource{Version: "v1", Resource: "configmaps"}
	namespaceGVR = schema.GroupVersionResource{Version: "v1", Resource: "namespaces"}
)

// applyClient wires a dynamic fake behind a fixed core/v1 mapper.
func applyClient(t *testing.T, objects ...runtime.Object) (*Client, *dynfake.FakeDynamicClient) {
	t.Helper()
	scheme := runtime.NewScheme()
	require.NoError(t, corev1.AddToScheme(scheme))
	dyn := dynfake.NewSimpleDynamicClient(scheme, objects...)

	mapper := meta.NewDefaultRESTMapper(nil)
	mapper.Add(schema.GroupVersionKind{Version: "v1", Kind: "ConfigMap"}, meta.RESTScopeNamespace)
	mapper.Add(schema.GroupVersionKind{Version: "v1", Kind: "Namespace"}, meta.RESTScopeRoot)

	return &Client{dynamic: dyn, mapper: mapper}, dyn
}

func writeManifest(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestApplyManifests(t *testing.T) {
	t.Run("creates every document behind the glob", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, filepath.Join(dir, "base", "config.yaml"), `
apiVersion: v1
kind: ConfigMap
metadata:
  name: app-config
data:
  mode: workshop
---
apiVersion: v1
kind: ConfigMap
metadata:
  name: scoped-config
  namespace: labs
data:
  mode: scoped
`)
		writeManifest(t, filepath.Join(dir, "base", "deep", "ns.yaml"), `
apiVersion: v1
kind: Namespace
metadata:
  name: labs
`)

		c, dyn := applyClient(t)
		err := c.ApplyManifests(context.Background(), "default", filepath.Join(dir, "**", "*.yaml"))
		require.NoError(t, err)

		ctx := context.Background()
		_, err = dyn.Resource(configMapGVR).Namespace("default").Get(ctx, "app-config", metav1.GetOptions{})
		assert.NoError(t, err, "no explicit namespace falls back to the argument")
		_, err = dyn.Resource(configMapGVR).Namespace("labs").Get(ctx, "scoped-config", metav1.GetOptions{})
		assert.NoError(t, err, "explicit namespace wins")
		_, err = dyn.Resource(namespaceGVR).Get(ctx, "labs", metav1.GetOptions{})
		assert.NoError(t, err, "cluster-scoped kinds skip the namespace")
	})

	t.Run("existing objects are left alone", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, filepath.Join(dir, "config.yaml"), `
apiVersion: v1
kind: ConfigMap
metadata:
  name: app-config
data:
  mode: workshop
`)

		existing := &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: "app-config", Namespace: "default"},
			Data:       map[string]string{"mode": "original"},
		}
		c, _ := applyClient(t, existing)

		err := c.ApplyManifests(context.Background(), "default", filepath.Join(dir, "*.yaml"))
		require.NoError(t, err)
	})

	t.Run("failures aggregate without stopping the walk", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, filepath.Join(dir, "aa-broken.yaml"), `
metadata:
  name: no-kind-here
`)
		writeManifest(t, filepath.Join(dir, "zz-good.yaml"), `
apiVersion: v1
kind: ConfigMap
metadata:
  name: survivor
`)

		c, dyn := applyClient(t)
		err := c.ApplyManifests(context.Background(), "default", filepath.Join(dir, "*.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "aa-broken.yaml")
		assert.Contains(t, err.Error(), "no kind")

		_, err = dyn.Resource(configMapGVR).Namespace("default").Get(context.Background(), "survivor", metav1.GetOptions{})
		assert.NoError(t, err, "good file still applied")
	})

	t.Run("empty and comment-only documents are skipped", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, filepath.Join(dir, "sparse.yaml"), `
# leading comment only
---
apiVersion: v1
kind: ConfigMap
metadata:
  name: only-one
---
`)

		c, dyn := applyClient(t)
		err := c.ApplyManifests(context.Background(), "default", filepath.Join(dir, "*.yaml"))
		require.NoError(t, err)

		_, err = dyn.Resource(configMapGVR).Namespace("default").Get(context.Background(), "only-one", metav1.GetOptions{})
		assert.NoError(t, err)
	})
}
