// Package model provides the geometry and data types shared by every
// glyphnav component, and the collaborator interfaces a PDF backend
// implements.
//
// # Geometry
//
// Two coordinate spaces are in play:
//
//   - physical space - PDF points, Y grows upwards from the page bottom
//   - image space - bitmap pixels, Y grows downwards from the top
//
// [Rect] corners are not required to be ordered; [Rect.Normalize] orders
// them. A [Mapping] converts points and rectangles between the spaces, and
// [Matrix] is the PDF affine transform used to place images.
//
// # Results
//
// [FindResult], [Figure] and [ReferencedFigure] are produced by the find
// and figures packages and cached per page by the pages package.
//
// # Collaborators
//
// [Source] is what the engine reads from: page text, line rectangles,
// literal search, image regions and the outline. [PageLabeler],
// [LinkSource] and [Renderer] are optional capabilities.
package model
