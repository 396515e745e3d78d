package k8s

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	k8syaml "k8s.io/apimachinery/pkg/util/yaml"
	"k8s.io/client-go/dynamic"
)

// ApplyManifests glob-expands the patterns and creates every document in
// the matched files. Objects that already exist are left alone. Failures
// don't stop the walk; they come back aggregated per file.
func (c *Client) ApplyManifests(ctx context.Context, namespace string, patterns ...string) error {
	var result *multierror.Error
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("bad pattern %q: %w", pattern, err))
			continue
		}
		for _, path := range matches {
			if err := c.applyFile(ctx, namespace, path); err != nil {
				result = multierror.Append(result, fmt.Errorf("%s: %w", path, err))
			}
		}
	}
	return result.ErrorOrNil()
}

func (c *Client) applyFile(ctx context.Context, namespace, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	reader := k8syaml.NewYAMLReader(bufio.NewReader(f))
	for {
		doc, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read documents: %w", err)
		}
		if len(bytes.TrimSpace(doc)) == 0 {
			continue
		}
		if err := c.applyDocument(ctx, namespace, doc); err != nil {
			return err
		}
	}
}

func (c *Client) applyDocument(ctx context.Context, namespace string, doc []byte) error {
	var obj unstructured.Unstructured
	if err := k8syaml.Unmarshal(doc, &obj.Object); err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}
	if len(obj.Object) == 0 {
		return nil
	}

	gvk := obj.GroupVersionKind()
	if gvk.Kind == "" {
		return fmt.Errorf("document has no kind")
	}
	mapping, err := c.mapper.RESTMapping(gvk.GroupKind(), gvk.Version)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", gvk, err)
	}

	var dr dynamic.ResourceInterface = c.dynamic.Resource(mapping.Resource)
	if mapping.Scope.Name() == meta.RESTScopeNameNamespace {
		ns := obj.GetNamespace()
		if ns == "" {
			ns = namespace
		}
		dr = c.dynamic.Resource(mapping.Resource).Namespace(ns)
	}

	_, err = dr.Create(ctx, &obj, metav1.CreateOptions{})
	if apierrors.IsAlreadyExists(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create %s %q: %w", gvk.Kind, obj.GetName(), err)
	}
	return nil
}
