package models

// DisplayImage picks the single image that represents a recipe in list and
// summary views. The first image in list order is the provisional choice;
// any image flagged as final product overrides it. When several images carry
// the flag the last one in list order wins. Returns nil for an empty list.
func DisplayImage(images []RecipeImage) *RecipeImage {
	if len(images) == 0 {
		return nil
	}
	selected := &images[0]
	for i := range images {
		if images[i].IsFinalProduct {
			selected = &images[i]
		}
	}
	return selected
}

// SplitGallery separates a recipe's images into the final-product image and
// the remaining gallery images for the detail view. The split goes by the
// IsFinalProduct flag itself, with the same last-wins rule as DisplayImage;
// when no image is flagged, final is nil and all images are returned as
// others.
func SplitGallery(images []RecipeImage) (final *RecipeImage, others []RecipeImage) {
	finalIdx := -1
	for i := range images {
		if images[i].IsFinalProduct {
			finalIdx = i
		}
	}
	if finalIdx == -1 {
		return nil, images
	}
	others = make([]RecipeImage, 0, len(images)-1)
	others = append(others, images[:finalIdx]...)
	others = append(others, images[finalIdx+1:]...)
	return &images[finalIdx], others
}
